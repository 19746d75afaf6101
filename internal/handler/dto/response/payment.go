package response

import "github.com/fawwazmw/cashier-app/internal/usecase/shared"

type PaymentSessionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func FromSnapSession(session *shared.SnapSession) *PaymentSessionResponse {
	return &PaymentSessionResponse{
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
	}
}

type PaymentMethod struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type PaymentMethodsResponse struct {
	Methods []PaymentMethod `json:"methods"`
}

// PaymentMethodList reports cash as always available; the gateway entry is
// disabled until a server key is configured.
func PaymentMethodList(gatewayEnabled bool) PaymentMethodsResponse {
	return PaymentMethodsResponse{
		Methods: []PaymentMethod{
			{Code: "cash", Label: "Cash", Enabled: true},
			{Code: "gateway", Label: "Online payment", Enabled: gatewayEnabled},
		},
	}
}

// WebhookAck is always returned to the gateway, even for verdicts the
// reconciliation ignored, so deliveries are not retried forever.
type WebhookAck struct {
	Status string `json:"status"`
}

func AckOK() WebhookAck {
	return WebhookAck{Status: "ok"}
}

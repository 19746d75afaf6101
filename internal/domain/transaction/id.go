package transaction

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const idPrefix = "TRX"

var suffixAlphabet = []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// NewID generates a time-derived transaction id: TRX + unix millis + a
// 3-char random suffix. Collisions are negligible within operational
// timeframes; the unique constraint on insert is the final arbiter and a
// violation there is a fatal creation error, not a retry signal.
func NewID(now time.Time) string {
	var b strings.Builder
	b.WriteString(idPrefix)
	fmt.Fprintf(&b, "%d", now.UnixMilli())
	for range 3 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(suffixAlphabet))))
		if err != nil {
			// crypto/rand failure leaves the timestamp as the only entropy
			b.WriteRune(suffixAlphabet[0])
			continue
		}
		b.WriteRune(suffixAlphabet[n.Int64()])
	}
	return b.String()
}

func IsValidID(id string) bool {
	return strings.HasPrefix(id, idPrefix) && len(id) > len(idPrefix)
}

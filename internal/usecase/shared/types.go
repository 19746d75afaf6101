package shared

// ProductPatch carries the optional fields of a product update; nil means
// leave unchanged.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Stock       *int
	Category    *string
	Description *string
	ImageURL    *string
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Stock == nil &&
		p.Category == nil && p.Description == nil && p.ImageURL == nil
}

type ProfilePatch struct {
	Name  *string
	Email *string
	Phone *string
}

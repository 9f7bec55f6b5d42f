// Package domain holds the storefront's core types: catalog products,
// the session cart, and the order payloads exchanged with the remote API.
package domain

// Ref is a name-bearing reference to a brand or category.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a read-only catalog entry sourced from the remote API.
// Stock is nil when the catalog does not report it.
type Product struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           Price  `json:"price"`
	Slug            string `json:"slug"`
	Stock           *int   `json:"stock,omitempty"`
	Brand           *Ref   `json:"brand,omitempty"`
	Category        *Ref   `json:"category,omitempty"`
	Image           string `json:"image,omitempty"`
	MainImage       string `json:"main_image,omitempty"`
	LongDescription string `json:"long_description,omitempty"`
}

// ImageURL returns the primary image reference, preferring Image over
// MainImage. Empty when the product has no image.
func (p Product) ImageURL() string {
	if p.Image != "" {
		return p.Image
	}
	return p.MainImage
}

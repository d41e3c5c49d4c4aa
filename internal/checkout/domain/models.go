package domain

import "github.com/smallbiznis/shoplink/internal/shopify"

// AbandonedCheckout is an open checkout a customer walked away from,
// captured by the periodic sync sweep.
type AbandonedCheckout struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	CheckoutURL string  `gorm:"not null" json:"checkout_url"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	StoreName   string  `gorm:"not null;index" json:"store_name"`
}

// FromPlatform maps a platform checkout onto a row. Pure.
func FromPlatform(src shopify.Checkout, storeName string) AbandonedCheckout {
	checkout := AbandonedCheckout{
		ID:          src.ID,
		CheckoutURL: src.AbandonedCheckoutURL,
		StoreName:   storeName,
	}
	if customer := src.Customer; customer != nil {
		checkout.FirstName = customer.FirstName
		checkout.LastName = customer.LastName
		checkout.Email = customer.Email
	}
	return checkout
}

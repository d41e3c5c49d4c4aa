package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shoplink/internal/shopify"
)

// Order is a paid order pulled from the platform. The external order
// id is the primary key. Customer fields keep independent
// presence/absence: a row may carry an email and no name, or neither.
type Order struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	StoreName string  `gorm:"not null;index" json:"store_name"`
}

type LineItem struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Title   string       `gorm:"not null" json:"title"`
	OrderID int64        `gorm:"not null;index" json:"order_id"`
}

// FromPlatform maps a platform order onto rows. Pure; the single
// mapping shared by the webhook and bulk-sync paths.
func FromPlatform(src shopify.Order, storeName string, genID *snowflake.Node) (Order, []LineItem) {
	order := Order{
		ID:        src.ID,
		StoreName: storeName,
	}
	if customer := src.Customer; customer != nil {
		order.FirstName = customer.FirstName
		order.LastName = customer.LastName
		order.Email = customer.Email
	}

	items := make([]LineItem, 0, len(src.LineItems))
	for _, item := range src.LineItems {
		items = append(items, LineItem{
			ID:      genID.Generate(),
			Title:   item.Title,
			OrderID: src.ID,
		})
	}
	return order, items
}

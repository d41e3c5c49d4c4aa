package domain

import "github.com/smallbiznis/shoplink/internal/shopify"

// Dispute is a payment dispute. The platform's external id is the
// natural key; updates are keyed on it. Amount stays decimal text and
// timestamps stay the platform's strings, both stored verbatim.
type Dispute struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	OrderID        *int64  `json:"order_id"`
	Type           string  `gorm:"column:type;not null" json:"type"`
	Amount         string  `gorm:"not null" json:"amount"`
	Currency       string  `gorm:"not null" json:"currency"`
	Reason         string  `gorm:"not null" json:"reason"`
	Status         string  `gorm:"not null" json:"status"`
	InitiatedAt    string  `gorm:"not null" json:"initiated_at"`
	EvidenceDueBy  string  `gorm:"not null" json:"evidence_due_by"`
	EvidenceSentOn *string `json:"evidence_sent_on"`
	StoreName      string  `gorm:"not null;index" json:"store_name"`
}

// FromPlatform maps a platform dispute onto a row. Pure; shared by the
// webhook and bulk-sync paths.
func FromPlatform(src shopify.Dispute, storeName string) Dispute {
	return Dispute{
		ID:             src.ID,
		OrderID:        src.OrderID,
		Type:           src.Type,
		Amount:         src.Amount,
		Currency:       src.Currency,
		Reason:         src.Reason,
		Status:         src.Status,
		InitiatedAt:    src.InitiatedAt,
		EvidenceDueBy:  src.EvidenceDueBy,
		EvidenceSentOn: src.EvidenceSentOn,
		StoreName:      storeName,
	}
}

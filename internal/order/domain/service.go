package domain

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/shopify"
)

type Service interface {
	// Ingest persists a single order arriving on the webhook path.
	Ingest(ctx context.Context, storeName string, src shopify.Order) error
	// IngestBatch persists a bulk-fetched order collection and returns
	// the number of order rows written.
	IngestBatch(ctx context.Context, storeName string, src []shopify.Order) (int, error)
	// FindByIDs serves customer data requests.
	FindByIDs(ctx context.Context, ids []int64) ([]Order, error)
	// Redact removes the named orders for customer data erasure.
	Redact(ctx context.Context, ids []int64) error
}

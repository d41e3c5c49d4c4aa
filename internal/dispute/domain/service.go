package domain

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/shopify"
)

type Service interface {
	// IngestCreate persists a dispute-create webhook payload.
	// Redeliveries of an already-persisted dispute are accepted
	// silently.
	IngestCreate(ctx context.Context, storeName string, src shopify.Dispute) error
	// IngestUpdate applies a dispute-update webhook payload. An id not
	// yet present updates zero rows and succeeds.
	IngestUpdate(ctx context.Context, src shopify.Dispute) error
	// IngestBatch persists a bulk-fetched dispute collection and
	// returns the number of rows submitted.
	IngestBatch(ctx context.Context, storeName string, src []shopify.Dispute) (int, error)
}

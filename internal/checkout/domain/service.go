package domain

import "context"

type Service interface {
	// SyncAll sweeps every installed store for newly abandoned
	// checkouts and advances each store's cursor. Returns the number
	// of checkout rows submitted across all stores.
	SyncAll(ctx context.Context) (int, error)
	// FindByEmail serves customer data requests.
	FindByEmail(ctx context.Context, email string) ([]AbandonedCheckout, error)
	// EraseByEmail removes a customer's checkouts for data erasure.
	EraseByEmail(ctx context.Context, email string) error
}

package ports

import "context"

// LedgerStore persists the set of processed submission IDs.
type LedgerStore interface {
	// Load returns the stored ids; an absent ledger yields an empty slice.
	Load(ctx context.Context) ([]string, error)
	// Save replaces the stored set with ids.
	Save(ctx context.Context, ids []string) error
	// Reset clears the ledger.
	Reset(ctx context.Context) error
}

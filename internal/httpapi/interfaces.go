package httpapi

import (
	"context"

	"github.com/kirdwahi/ledger/internal/service/account"
	"github.com/kirdwahi/ledger/internal/service/entry"
)

// Store is the union of repository and writer operations the API needs.
// All three storage backends satisfy it.
type Store interface {
	account.Repo
	account.Writer
	entry.Repo
	entry.Writer
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

package http

import (
	"context"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
)

type accountCtxKey struct{}

func withAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, a)
}

// AccountFromContext returns the authenticated account injected by the
// authorization middleware.
func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(accountCtxKey{}).(domain.Account)
	return a, ok
}

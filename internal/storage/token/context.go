package token

import (
	"context"

	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

type contextTokenKey struct{}

// ContextWithToken stashes the request's raw credential so a ContextStore
// can forward it on backend calls.
func ContextWithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, contextTokenKey{}, tok)
}

// ContextStore reads the credential of the current request from its
// context. It is read-only: the gateway mutates credentials through the
// session stores, never through a request context.
type ContextStore struct{}

func NewContextStore() ContextStore { return ContextStore{} }

func (ContextStore) Get(ctx context.Context) (string, error) {
	tok, ok := ctx.Value(contextTokenKey{}).(string)
	if !ok || tok == "" {
		return "", pkgerrors.ErrNoToken
	}
	return tok, nil
}

func (ContextStore) Set(ctx context.Context, token string) error {
	return pkgerrors.ErrStorageUnavailable
}

func (ContextStore) Clear(ctx context.Context) error {
	return pkgerrors.ErrStorageUnavailable
}

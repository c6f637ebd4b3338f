package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("not authenticated")

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email,omitempty"`
}

// Session is the token pair issued by the provider after a code exchange.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	Identity     Identity
}

// Resolver turns request-scoped credentials into an Identity.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (*Identity, error)
	Exchange(ctx context.Context, code, codeVerifier string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

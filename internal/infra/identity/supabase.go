package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	auth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
	"go.uber.org/zap"
)

// ProviderAPI is the subset of the Supabase auth API the resolver needs.
type ProviderAPI interface {
	GetUser(accessToken string) (*Identity, error)
	Exchange(code, codeVerifier string) (*Session, error)
	Logout(accessToken string) error
}

type supabaseAPI struct {
	client auth.Client
}

// NewSupabaseAPI talks to <projectURL>/auth/v1 with the project's anon key.
func NewSupabaseAPI(projectURL, anonKey string, hc *http.Client) ProviderAPI {
	client := auth.New("", anonKey).WithCustomAuthURL(strings.TrimRight(projectURL, "/") + "/auth/v1")
	if hc != nil {
		client = client.WithClient(*hc)
	}
	return &supabaseAPI{client: client}
}

func (s *supabaseAPI) GetUser(accessToken string) (*Identity, error) {
	resp, err := s.client.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: resp.ID, Email: resp.Email}, nil
}

func (s *supabaseAPI) Exchange(code, codeVerifier string) (*Session, error) {
	resp, err := s.client.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: codeVerifier,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Identity:     Identity{UserID: resp.User.ID, Email: resp.User.Email},
	}, nil
}

func (s *supabaseAPI) Logout(accessToken string) error {
	return s.client.WithToken(accessToken).Logout()
}

// SupabaseResolver verifies access tokens locally when the project's JWT secret is
// configured and asks the provider otherwise.
type SupabaseResolver struct {
	api       ProviderAPI
	jwtSecret []byte
	log       *zap.Logger
}

func NewSupabaseResolver(api ProviderAPI, jwtSecret string, log *zap.Logger) *SupabaseResolver {
	r := &SupabaseResolver{api: api, log: log}
	if jwtSecret != "" {
		r.jwtSecret = []byte(jwtSecret)
	}
	return r
}

func (r *SupabaseResolver) Resolve(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.jwtSecret != nil {
		return r.verifyLocal(accessToken)
	}

	id, err := r.api.GetUser(accessToken)
	if err != nil {
		r.log.Debug("provider rejected access token", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if id == nil || id.UserID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	return id, nil
}

func (r *SupabaseResolver) verifyLocal(accessToken string) (*Identity, error) {
	parsed, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		return r.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithAudience("authenticated"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	userID, err := uuid.Parse(sub)
	if err != nil || userID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
	}
	email, _ := claims["email"].(string)
	return &Identity{UserID: userID, Email: email}, nil
}

func (r *SupabaseResolver) Exchange(ctx context.Context, code, codeVerifier string) (*Session, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.api.Exchange(code, codeVerifier)
}

func (r *SupabaseResolver) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.api.Logout(accessToken)
}

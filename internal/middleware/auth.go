package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/quokkabay/quokkabay/internal/infra/identity"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
)

const IdentityKey = "identity"

// IdentityAuth resolves the caller from the bearer header or session cookies and stores the
// identity under IdentityKey. Requests without a valid identity are rejected with 401.
func IdentityAuth(resolver identity.Resolver, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx, authSpan := otel.Tracer("middleware").Start(ctx, "identity_auth",
			trace.WithAttributes(attribute.String("middleware", "identity_auth")))

		token := identity.TokenFromRequest(c.Request, cookieName)
		if token == "" {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		id, err := resolver.Resolve(ctx, token)
		if err != nil {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			if !errors.Is(err, identity.ErrUnauthenticated) {
				authSpan.RecordError(err)
				log.Warn("identity lookup failed", zap.Error(err))
			}
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		authSpan.SetAttributes(attribute.Bool("authenticated", true))
		authSpan.End()

		rootSpan := trace.SpanFromContext(c.Request.Context())
		if rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.String("user_id", id.UserID.String()))
		}

		c.Set(IdentityKey, id)
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// CurrentIdentity returns the identity set by IdentityAuth.
func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quokkabay/quokkabay/internal/infra/identity"
	"github.com/quokkabay/quokkabay/internal/middleware"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
)

const defaultAfterLogin = "/dashboard"

type AuthHandler struct {
	resolver     identity.Resolver
	publicURL    string
	cookieSecure bool
	cookieName   string
	log          *zap.Logger
}

// NewAuthHandler builds the session endpoints. publicURL is the web app origin that
// redirects are resolved against.
func NewAuthHandler(resolver identity.Resolver, publicURL, cookieName string, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		resolver:     resolver,
		publicURL:    strings.TrimRight(publicURL, "/"),
		cookieSecure: cookieSecure,
		cookieName:   cookieName,
		log:          log,
	}
}

type AuthCallbackReq struct {
	Code         string `form:"code"`
	CodeVerifier string `form:"code_verifier"`
	Next         string `form:"next"`
}

// Callback godoc
//
//	@Summary		OAuth callback
//	@Description	Exchange an authorization code for a session, set the session cookies and redirect into the app
//	@Tags			auth
//	@Param			code			query	string	true	"Authorization code"
//	@Param			code_verifier	query	string	false	"PKCE code verifier"
//	@Param			next			query	string	false	"Relative path to continue to, default /dashboard"
//	@Success		302
//	@Router			/auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	req := AuthCallbackReq{}
	_ = c.ShouldBindQuery(&req)

	if req.Code == "" {
		c.Redirect(http.StatusFound, h.publicURL+"/login")
		return
	}

	sess, err := h.resolver.Exchange(c.Request.Context(), req.Code, req.CodeVerifier)
	if err != nil {
		h.log.Info("code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.publicURL+"/login?error="+url.QueryEscape(err.Error()))
		return
	}

	if sess.AccessToken != "" && sess.RefreshToken != "" {
		h.setSessionCookies(c, sess.AccessToken, sess.RefreshToken, 0)
	}
	c.Redirect(http.StatusFound, h.publicURL+safeNext(req.Next))
}

// SignOut godoc
//
//	@Summary		Sign out
//	@Description	End the provider session when one is present and clear the session cookies
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	serializer.Response
//	@Router			/auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if token := identity.TokenFromRequest(c.Request, h.cookieName); token != "" {
		if err := h.resolver.SignOut(c.Request.Context(), token); err != nil {
			h.log.Info("provider sign out failed", zap.Error(err))
		}
	}
	h.setSessionCookies(c, "", "", -1)
	c.JSON(http.StatusOK, serializer.OK(nil))
}

// Me godoc
//
//	@Summary		Current identity
//	@Description	Return the authenticated caller
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=identity.Identity}
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(id))
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, access, refresh string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(identity.AccessTokenCookie, access, maxAge, "/", "", h.cookieSecure, true)
	c.SetCookie(identity.RefreshTokenCookie, refresh, maxAge, "/", "", h.cookieSecure, true)
}

// safeNext keeps redirects on our own origin.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultAfterLogin
	}
	return next
}

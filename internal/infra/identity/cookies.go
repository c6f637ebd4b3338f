package identity

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"

	base64Prefix = "base64-"
)

var providerCookiePattern = regexp.MustCompile(`^(sb-.+-auth-token)(?:\.(\d+))?$`)

// TokenFromRequest finds the caller's access token. Sources, in order: the
// Authorization bearer header, the sb-access-token cookie, then the provider's session
// cookie (possibly split into numbered chunks). providerCookie may be empty, in which
// case the first sb-*-auth-token cookie is used.
func TokenFromRequest(r *http.Request, providerCookie string) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	cookies := r.Cookies()
	if providerCookie == "" {
		providerCookie = detectProviderCookie(cookies)
		if providerCookie == "" {
			return ""
		}
	}
	return accessTokenFromSession(reassemble(cookies, providerCookie))
}

func detectProviderCookie(cookies []*http.Cookie) string {
	for _, c := range cookies {
		if m := providerCookiePattern.FindStringSubmatch(c.Name); m != nil {
			return m[1]
		}
	}
	return ""
}

// reassemble returns the whole cookie value, joining name.0, name.1, ... in numeric order
// when the unsplit cookie is absent.
func reassemble(cookies []*http.Cookie, name string) string {
	type chunk struct {
		idx   int
		value string
	}
	var chunks []chunk
	for _, c := range cookies {
		if c.Name == name {
			return decodeCookieValue(c.Value)
		}
		if !strings.HasPrefix(c.Name, name+".") {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(c.Name, name+"."))
		if err != nil {
			continue
		}
		chunks = append(chunks, chunk{idx: idx, value: decodeCookieValue(c.Value)})
	}
	if len(chunks) == 0 {
		return ""
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].idx < chunks[j].idx })
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.value)
	}
	return sb.String()
}

func decodeCookieValue(v string) string {
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// accessTokenFromSession extracts access_token from a serialized provider session. The
// session is JSON, optionally base64url-encoded behind a "base64-" prefix; older clients
// stored a JSON array whose first element is the access token.
func accessTokenFromSession(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, base64Prefix) {
		decoded, ok := decodeBase64(strings.TrimPrefix(raw, base64Prefix))
		if !ok {
			return ""
		}
		raw = decoded
	}

	var session struct {
		AccessToken string `json:"access_token"`
	}
	if err := sonic.UnmarshalString(raw, &session); err == nil && session.AccessToken != "" {
		return session.AccessToken
	}

	var legacy []any
	if err := sonic.UnmarshalString(raw, &legacy); err == nil && len(legacy) > 0 {
		if token, ok := legacy[0].(string); ok {
			return token
		}
	}
	return ""
}

func decodeBase64(s string) (string, bool) {
	for _, enc := range []*base64.Encoding{base64.RawURLEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.StdEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			return string(b), true
		}
	}
	return "", false
}

package auth

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "session_id"
	LoginPath         = "/login"

	contextKeyAuth = "auth"
)

type ctxKey struct{}

// SessionReader resolves a session id to a username.
type SessionReader interface {
	Username(ctx context.Context, id string) (string, bool, error)
}

// DefaultSkip lists paths served without a session.
var DefaultSkip = []string{
	`/favicon\.ico`,
	`/static/.*`,
	`.*\.css`,
	`/login`,
	`/health`,
	`/version`,
	`/swagger.*`,
}

// UsernameFromContext returns the identity set by Gate. "" if not set.
func UsernameFromContext(c *gin.Context) string {
	return c.GetString(contextKeyAuth)
}

// WithUsername returns ctx carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKey{}, username)
}

// UsernameFrom returns the username stored by WithUsername.
func UsernameFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)
	return v, ok && v != ""
}

// Gate returns a middleware that lets requests matching skip through untouched
// and redirects every other request without a live session to the login page.
// Skip patterns must match the whole path.
func Gate(sessions SessionReader, logs *zap.SugaredLogger, skip ...string) gin.HandlerFunc {
	allow := compileSkip(skip)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, re := range allow {
			if re.MatchString(path) {
				c.Next()
				return
			}
		}

		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			redirectToLogin(c)
			return
		}
		username, ok, err := sessions.Username(c.Request.Context(), sessionID)
		if err != nil {
			logs.Errorw("session lookup failed", "error", err, "path", path)
			_ = c.Error(err)
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			c.Abort()
			return
		}
		if !ok {
			redirectToLogin(c)
			return
		}

		c.Set(contextKeyAuth, username)
		c.Request = c.Request.WithContext(WithUsername(c.Request.Context(), username))
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}

func compileSkip(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSuffix(strings.TrimPrefix(p, "^"), "$")
		out = append(out, regexp.MustCompile("^(?:"+p+")$"))
	}
	return out
}

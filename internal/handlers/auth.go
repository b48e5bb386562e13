package handlers

import (
	"errors"
	"net/http"

	"todoapp/internal/auth"
	"todoapp/internal/dto"
	"todoapp/internal/middleware"
	"todoapp/internal/service"
	"todoapp/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	routeLogin  = "POST /login"
	routeLogout = "GET /logout"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	logs         *zap.SugaredLogger
	sessions     SessionStore
	userSvc      UserService
	secureCookie bool
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(logger *zap.SugaredLogger, sessions SessionStore, userSvc UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{logs: logger, sessions: sessions, userSvc: userSvc, secureCookie: secureCookie}
}

// LoginForm godoc
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, view.LoginPage{})
}

// Login godoc
// @Summary      Login, signing up unseen usernames
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      303  "redirect to / on success, /login on failure"
// @Failure      500
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	requestID := middleware.RequestIDFrom(c)

	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.logs.Infow("login rejected", "reason", "incomplete form", "handler", routeLogin, "request_id", requestID)
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
		return
	}

	user, err := h.userSvc.Login(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logs.Infow("login rejected", "reason", "credentials", "handler", routeLogin, "request_id", requestID)
			c.Redirect(http.StatusSeeOther, auth.LoginPath)
			return
		}
		serverError(c, h.logs, routeLogin, "login failed", err)
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), user.Username)
	if err != nil {
		serverError(c, h.logs, routeLogin, "failed to create session", err)
		return
	}
	h.setCookie(c, sessionID, int(h.sessions.TTL().Seconds()))
	h.logs.Infow("user logged in", "user", user.Username, "handler", routeLogin, "request_id", requestID)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      303  "redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			h.logs.Errorw("failed to delete session",
				"error", err,
				"handler", routeLogout,
				"request_id", middleware.RequestIDFrom(c))
		}
	}
	h.setCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, value, maxAge, "/", "", h.secureCookie, true)
}

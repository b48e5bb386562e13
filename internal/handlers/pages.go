package handlers

import (
	"net/http"

	"todoapp/internal/middleware"
	"todoapp/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func render(c *gin.Context, status int, r view.Renderable) {
	c.HTML(status, r.TemplateName(), r)
}

// NotFound renders the page shown for unmatched routes and foreign or missing todos.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, view.NotFoundPage{})
}

// serverError logs err and answers with the generic error page.
func serverError(c *gin.Context, logs *zap.SugaredLogger, handler, msg string, err error) {
	_ = c.Error(err)
	logs.Errorw(msg,
		"error", err,
		"handler", handler,
		"request_id", middleware.RequestIDFrom(c))
	render(c, http.StatusInternalServerError, view.ErrorPage{})
}

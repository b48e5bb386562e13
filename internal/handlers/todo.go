package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todoapp/internal/auth"
	"todoapp/internal/dto"
	"todoapp/internal/middleware"
	"todoapp/internal/service"
	"todoapp/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	routeList    = "GET /"
	routeAdd     = "POST /"
	routeReorder = "POST /reorder"
	routeDetail  = "GET /todos/:id"
	routeToggle  = "POST /todos/:id/toggle"
)

// TodoHandler serves the current user's list. The owner is always the
// identity the gate attached to the request.
type TodoHandler struct {
	logs *zap.SugaredLogger
	svc  TodoService
}

func NewTodoHandler(logger *zap.SugaredLogger, svc TodoService) *TodoHandler {
	return &TodoHandler{logs: logger, svc: svc}
}

// List godoc
// @Summary      Current user's todo list
// @Tags         todos
// @Produce      html
// @Security     CookieAuth
// @Success      200
// @Success      303  "redirect to /login without a session"
// @Failure      500
// @Router       / [get]
func (h *TodoHandler) List(c *gin.Context) {
	name := auth.UsernameFromContext(c)
	list, err := h.svc.List(c.Request.Context(), name)
	if err != nil {
		serverError(c, h.logs, routeList, "failed to list todos", err)
		return
	}
	render(c, http.StatusOK, view.ListPage{Username: name, Items: view.Items(list)})
}

// Add godoc
// @Summary      Add a todo at the end of the list
// @Tags         todos
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Security     CookieAuth
// @Param        title     formData  string  true   "Title"
// @Param        details   formData  string  false  "Details"
// @Param        priority  formData  int     false  "Explicit priority"
// @Success      200  "new item plus out-of-band cleared input"
// @Failure      422  "blank title or non-integer priority"
// @Failure      500
// @Router       / [post]
func (h *TodoHandler) Add(c *gin.Context) {
	requestID := middleware.RequestIDFrom(c)

	var form dto.TodoForm
	if err := c.ShouldBind(&form); err != nil {
		h.rejectAdd(c, requestID, dto.MsgTodoRejected, err)
		return
	}
	if err := form.Validate(); err != nil {
		h.rejectAdd(c, requestID, dto.TodoRejection(err), err)
		return
	}
	priority, err := form.PriorityPtr()
	if err != nil {
		h.rejectAdd(c, requestID, dto.MsgPriorityNotInt, err)
		return
	}

	t, err := h.svc.Add(c.Request.Context(), auth.UsernameFromContext(c), form.Title, form.Details, priority)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTodo) {
			h.rejectAdd(c, requestID, dto.TodoRejection(err), err)
			return
		}
		serverError(c, h.logs, routeAdd, "failed to add todo", err)
		return
	}
	render(c, http.StatusOK, view.Added{Item: view.Item{Todo: t}})
}

// rejectAdd answers 422 with only the out-of-band error message; HX-Reswap
// keeps the list itself untouched.
func (h *TodoHandler) rejectAdd(c *gin.Context, requestID, reason string, err error) {
	h.logs.Infow("todo rejected", "reason", reason, "error", err, "handler", routeAdd, "request_id", requestID)
	c.Header("HX-Reswap", "none")
	render(c, http.StatusUnprocessableEntity, view.AddRejected{Message: reason})
}

// Reorder godoc
// @Summary      Reorder the current user's todos
// @Tags         todos
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Security     CookieAuth
// @Param        id  formData  []int  true  "Todo ids in display order"  collectionFormat(multi)
// @Success      200  "re-rendered list"
// @Failure      400  "non-integer id"
// @Failure      500
// @Router       /reorder [post]
func (h *TodoHandler) Reorder(c *gin.Context) {
	requestID := middleware.RequestIDFrom(c)

	var form dto.ReorderForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.logs.Infow("reorder rejected", "ids", form.IDs, "handler", routeReorder, "request_id", requestID)
		c.String(http.StatusBadRequest, "invalid id")
		return
	}
	ids, err := form.Int64s()
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id")
		return
	}

	name := auth.UsernameFromContext(c)
	if err := h.svc.Reorder(c.Request.Context(), name, ids); err != nil {
		serverError(c, h.logs, routeReorder, "failed to reorder todos", err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), name)
	if err != nil {
		serverError(c, h.logs, routeReorder, "failed to list todos", err)
		return
	}
	render(c, http.StatusOK, view.ItemList{Items: view.Items(list)})
}

// Detail godoc
// @Summary      Show one todo
// @Tags         todos
// @Produce      html
// @Security     CookieAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200
// @Failure      404
// @Failure      500
// @Router       /todos/{id} [get]
func (h *TodoHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), auth.UsernameFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
			return
		}
		serverError(c, h.logs, routeDetail, "failed to get todo", err)
		return
	}
	render(c, http.StatusOK, view.Detail{Item: view.Item{Todo: t}, Fragment: isHTMX(c)})
}

// Toggle godoc
// @Summary      Flip a todo's done flag
// @Tags         todos
// @Produce      html
// @Security     CookieAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  "re-rendered item"
// @Failure      404
// @Failure      500
// @Router       /todos/{id}/toggle [post]
func (h *TodoHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.ToggleDone(c.Request.Context(), auth.UsernameFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c)
			return
		}
		serverError(c, h.logs, routeToggle, "failed to toggle todo", err)
		return
	}
	render(c, http.StatusOK, view.Item{Todo: t})
}

// parseID answers 404 for anything that is not a positive id; a malformed
// id names no todo the user owns.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

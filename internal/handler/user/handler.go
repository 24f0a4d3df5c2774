package user

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/user"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "User"

type Handler struct {
	service user.UserServicer
	auth    *middleware.AuthMiddleware
}

func NewHandler(service user.UserServicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// RegisterRoutes expects r to sit behind Authenticate.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.auth.RequireAdmin(), h.ListUsers)
		users.GET("/:id", h.auth.RequireSelfOrAdmin("id"), h.GetUser)
		users.PUT("/:id", h.auth.RequireSelfOrAdmin("id"), h.UpdateUser)
		users.DELETE("/:id", h.auth.RequireSelfOrAdmin("id"), h.DeleteUser)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	filter := model.UserFilter{
		Role:   model.UserRole(c.Query("role")),
		Status: model.UserStatus(c.Query("status")),
		Sort:   handler.SortFrom(c),
	}

	users, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !handler.Bind(c, &req) {
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), handler.Principal(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "User deleted successfully")
}

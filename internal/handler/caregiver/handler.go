package caregiver

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/caregiver"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "Caregiver"

type Handler struct {
	service caregiver.CaregiverServicer
	auth    *middleware.AuthMiddleware
}

func NewHandler(service caregiver.CaregiverServicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// RegisterRoutes expects r to sit behind Authenticate.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	caregivers := r.Group("/caregivers")
	{
		caregivers.GET("", h.ListCaregivers)
		caregivers.GET("/:id", h.GetCaregiver)
		caregivers.POST("", h.auth.RequireAdmin(), h.CreateCaregiver)
		caregivers.PUT("/:id", h.auth.RequireSelfOrAdmin("id"), h.UpdateCaregiver)
		caregivers.DELETE("/:id", h.auth.RequireAdmin(), h.DeleteCaregiver)
	}

	availability := r.Group("/availability")
	{
		availability.GET("/:caregiverId", h.ListAvailability)
		availability.POST("/:caregiverId", h.AddAvailability)
		availability.PUT("/:caregiverId/:availabilityId", h.UpdateAvailability)
		availability.DELETE("/:caregiverId/:availabilityId", h.RemoveAvailability)
	}
}

func (h *Handler) ListCaregivers(c *gin.Context) {
	caregivers, err := h.service.ListCaregivers(c.Request.Context(), handler.SortFrom(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, caregivers)
}

func (h *Handler) GetCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	cg, err := h.service.GetCaregiver(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cg)
}

func (h *Handler) CreateCaregiver(c *gin.Context) {
	var req model.RegisterCaregiverRequest
	if !handler.Bind(c, &req) {
		return
	}

	cg, err := h.service.CreateCaregiver(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, cg)
}

func (h *Handler) UpdateCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var req model.UpdateCaregiverRequest
	if !handler.Bind(c, &req) {
		return
	}

	cg, err := h.service.UpdateCaregiver(c.Request.Context(), handler.Principal(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cg)
}

func (h *Handler) DeleteCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	if err := h.service.DeleteCaregiver(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Caregiver deleted successfully")
}

func (h *Handler) ListAvailability(c *gin.Context) {
	caregiverID, ok := handler.PathID(c, "caregiverId", resource)
	if !ok {
		return
	}

	entries, err := h.service.ListAvailability(c.Request.Context(), caregiverID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func (h *Handler) AddAvailability(c *gin.Context) {
	caregiverID, ok := handler.PathID(c, "caregiverId", resource)
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if !handler.Bind(c, &req) {
		return
	}

	entries, err := h.service.AddAvailability(c.Request.Context(), caregiverID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, entries)
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	caregiverID, ok := handler.PathID(c, "caregiverId", resource)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "availabilityId", "Caregiver or availability")
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if !handler.Bind(c, &req) {
		return
	}

	entries, err := h.service.UpdateAvailability(c.Request.Context(), caregiverID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func (h *Handler) RemoveAvailability(c *gin.Context) {
	caregiverID, ok := handler.PathID(c, "caregiverId", resource)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "availabilityId", "Caregiver or availability")
	if !ok {
		return
	}

	entries, err := h.service.RemoveAvailability(c.Request.Context(), caregiverID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

package servicerequest

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/servicerequest"
	"github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "Service request"

type Handler struct {
	service servicerequest.ServiceRequestServicer
}

func NewHandler(service servicerequest.ServiceRequestServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/service-requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/pending", h.ListPending)
		requests.GET("/:id", h.GetRequest)
		requests.GET("/patient/:patientId", h.ListByPatient)
		requests.GET("/caregiver/:caregiverId", h.ListByCaregiver)
		requests.POST("", h.CreateRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.PATCH("/:id/accept/:caregiverId", h.AcceptRequest)
		requests.PATCH("/:id/complete", h.CompleteRequest)
		requests.PATCH("/:id/cancel", h.CancelRequest)
		requests.DELETE("/:id", h.DeleteRequest)
	}
}

func (h *Handler) ListRequests(c *gin.Context) {
	filter := model.ServiceRequestFilter{Sort: handler.SortFrom(c)}

	var ok bool
	if filter.PatientID, ok = handler.QueryID(c, "patientId"); !ok {
		return
	}
	if filter.CaregiverID, ok = handler.QueryID(c, "caregiverId"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := model.ServiceRequestStatus(raw)
		switch status {
		case model.ServiceRequestStatusPending, model.ServiceRequestStatusAccepted,
			model.ServiceRequestStatusCompleted, model.ServiceRequestStatusCancelled:
			filter.Status = &status
		default:
			httputil.RespondWithError(c, errors.Validation(`"status" must be one of [pending, accepted, completed, cancelled]`, nil))
			return
		}
	}
	h.list(c, filter)
}

func (h *Handler) ListPending(c *gin.Context) {
	reqs, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reqs)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, ok := handler.PathID(c, "patientId", "Patient")
	if !ok {
		return
	}
	h.list(c, model.ServiceRequestFilter{PatientID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) ListByCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "caregiverId", "Caregiver")
	if !ok {
		return
	}
	h.list(c, model.ServiceRequestFilter{CaregiverID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) list(c *gin.Context, filter model.ServiceRequestFilter) {
	reqs, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reqs)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	req, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, req)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var body model.CreateServiceRequestRequest
	if !handler.Bind(c, &body) {
		return
	}

	req, err := h.service.CreateRequest(c.Request.Context(), &body)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, req)
}

func (h *Handler) UpdateRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var body model.UpdateServiceRequestRequest
	if !handler.Bind(c, &body) {
		return
	}

	req, err := h.service.UpdateRequest(c.Request.Context(), id, &body)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, req)
}

func (h *Handler) AcceptRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}
	caregiverID, ok := handler.PathID(c, "caregiverId", "Caregiver")
	if !ok {
		return
	}

	req, err := h.service.AcceptRequest(c.Request.Context(), id, caregiverID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, req)
}

func (h *Handler) CompleteRequest(c *gin.Context) {
	h.transition(c, h.service.CompleteRequest)
}

func (h *Handler) CancelRequest(c *gin.Context) {
	h.transition(c, h.service.CancelRequest)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*model.ServiceRequestView, error)) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	req, err := fn(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, req)
}

func (h *Handler) DeleteRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	if err := h.service.DeleteRequest(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Service request deleted successfully")
}

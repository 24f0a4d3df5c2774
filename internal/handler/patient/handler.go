package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/service/patient"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "Patient"

type Handler struct {
	service patient.PatientServicer
}

func NewHandler(service patient.PatientServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/appointments", h.ListAppointments)
		patients.GET("/:id/medical-notes", h.ListMedicalNotes)
		patients.GET("/:id/service-requests", h.ListServiceRequests)
		patients.GET("/:id/messages", h.ListMessages)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context(), handler.SortFrom(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	appts, err := h.service.ListAppointments(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appts)
}

func (h *Handler) ListMedicalNotes(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	notes, err := h.service.ListMedicalNotes(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, notes)
}

func (h *Handler) ListServiceRequests(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	reqs, err := h.service.ListServiceRequests(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reqs)
}

func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	msgs, err := h.service.ListMessages(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, msgs)
}

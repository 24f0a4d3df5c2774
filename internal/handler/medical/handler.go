package medical

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/medical"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "Medical note"

type Handler struct {
	service medical.MedicalNoteServicer
}

func NewHandler(service medical.MedicalNoteServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/medical-notes")
	{
		notes.GET("", h.ListNotes)
		notes.GET("/:id", h.GetNote)
		notes.GET("/patient/:patientId", h.ListByPatient)
		notes.GET("/caregiver/:caregiverId", h.ListByCaregiver)
		notes.POST("", h.CreateNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}
}

func (h *Handler) ListNotes(c *gin.Context) {
	filter := model.MedicalNoteFilter{Sort: handler.SortFrom(c)}

	var ok bool
	if filter.PatientID, ok = handler.QueryID(c, "patientId"); !ok {
		return
	}
	if filter.CaregiverID, ok = handler.QueryID(c, "caregiverId"); !ok {
		return
	}
	h.list(c, filter)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, ok := handler.PathID(c, "patientId", "Patient")
	if !ok {
		return
	}
	h.list(c, model.MedicalNoteFilter{PatientID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) ListByCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "caregiverId", "Caregiver")
	if !ok {
		return
	}
	h.list(c, model.MedicalNoteFilter{CaregiverID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) list(c *gin.Context, filter model.MedicalNoteFilter) {
	notes, err := h.service.ListNotes(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, notes)
}

func (h *Handler) GetNote(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	note, err := h.service.GetNote(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, note)
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req model.CreateMedicalNoteRequest
	if !handler.Bind(c, &req) {
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, note)
}

func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var req model.UpdateMedicalNoteRequest
	if !handler.Bind(c, &req) {
		return
	}

	note, err := h.service.UpdateNote(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, note)
}

func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Medical note deleted successfully")
}

package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/appointment"
	"github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const resource = "Appointment"

type Handler struct {
	service appointment.AppointmentServicer
}

func NewHandler(service appointment.AppointmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.GET("/patient/:patientId", h.ListByPatient)
		appointments.GET("/caregiver/:caregiverId", h.ListByCaregiver)
		appointments.POST("", h.CreateAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.PATCH("/:id/cancel", h.CancelAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filter := model.AppointmentFilter{Sort: handler.SortFrom(c)}

	var ok bool
	if filter.PatientID, ok = handler.QueryID(c, "patientId"); !ok {
		return
	}
	if filter.CaregiverID, ok = handler.QueryID(c, "caregiverId"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := model.AppointmentStatus(raw)
		switch status {
		case model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled:
			filter.Status = &status
		default:
			httputil.RespondWithError(c, errors.Validation(`"status" must be one of [scheduled, completed, cancelled]`, nil))
			return
		}
	}

	h.list(c, filter)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	id, ok := handler.PathID(c, "patientId", "Patient")
	if !ok {
		return
	}
	h.list(c, model.AppointmentFilter{PatientID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) ListByCaregiver(c *gin.Context) {
	id, ok := handler.PathID(c, "caregiverId", "Caregiver")
	if !ok {
		return
	}
	h.list(c, model.AppointmentFilter{CaregiverID: &id, Sort: handler.SortFrom(c)})
}

func (h *Handler) list(c *gin.Context, filter model.AppointmentFilter) {
	appts, err := h.service.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appts)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	appt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.Bind(c, &req) {
		return
	}

	appt, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, appt)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var req model.UpdateAppointmentRequest
	if !handler.Bind(c, &req) {
		return
	}

	appt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

// CancelAppointment expects {"status":"cancelled"} so a stray PATCH cannot
// cancel by accident.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	var req model.CancelAppointmentRequest
	if !handler.Bind(c, &req) {
		return
	}

	appt, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id", resource)
	if !ok {
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Appointment deleted successfully")
}

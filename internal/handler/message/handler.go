package message

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/message"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

// owners pairs the path segment of an inbox with its owner kind and the resource
// named in not-found errors.
var owners = []struct {
	segment  string
	kind     model.OwnerKind
	resource string
}{
	{"user", model.OwnerUser, "User"},
	{"caregiver", model.OwnerCaregiver, "Caregiver"},
}

type Handler struct {
	service message.MessageServicer
}

func NewHandler(service message.MessageServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")

	for _, o := range owners {
		inbox := messages.Group("/" + o.segment)
		inbox.GET("/:ownerId", h.listMessages(o.kind, o.resource, false))
		inbox.GET("/:ownerId/unread", h.listMessages(o.kind, o.resource, true))
		inbox.PATCH("/:ownerId/mark-as-read/:messageId", h.markRead(o.kind, o.resource))
		inbox.DELETE("/:ownerId/:messageId", h.deleteMessage(o.kind, o.resource))
		messages.POST("/send-to-"+o.segment, h.sendMessage(o.kind))
	}
}

func (h *Handler) listMessages(owner model.OwnerKind, resource string, unread bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := handler.PathID(c, "ownerId", resource)
		if !ok {
			return
		}

		msgs, err := h.service.ListMessages(c.Request.Context(), owner, ownerID, model.MessageFilter{UnreadOnly: unread})
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, msgs)
	}
}

func (h *Handler) sendMessage(owner model.OwnerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.SendMessageRequest
		if !handler.Bind(c, &req) {
			return
		}

		msg, err := h.service.SendMessage(c.Request.Context(), handler.Principal(c), owner, &req)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithCreated(c, msg)
	}
}

func (h *Handler) markRead(owner model.OwnerKind, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, id, ok := messagePath(c, resource)
		if !ok {
			return
		}

		if err := h.service.MarkRead(c.Request.Context(), owner, ownerID, id); err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithMessage(c, "Message marked as read")
	}
}

func (h *Handler) deleteMessage(owner model.OwnerKind, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, id, ok := messagePath(c, resource)
		if !ok {
			return
		}

		if err := h.service.DeleteMessage(c.Request.Context(), owner, ownerID, id); err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithMessage(c, "Message deleted successfully")
	}
}

func messagePath(c *gin.Context, resource string) (ownerID, id uuid.UUID, ok bool) {
	if ownerID, ok = handler.PathID(c, "ownerId", resource+" or message"); !ok {
		return
	}
	id, ok = handler.PathID(c, "messageId", resource+" or message")
	return
}

package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/handler"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/service/auth"
	"github.com/jwalitptl/carelink-api/internal/validation"
	"github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

const checkInbox = "Check your inbox"

type Handler struct {
	svc auth.AuthServicer
}

func NewHandler(svc auth.AuthServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/caregiver/register", h.RegisterCaregiver)
		authGroup.POST("/caregiver/login", h.LoginCaregiver)
	}

	password := r.Group("/password")
	{
		password.POST("/forgot-password", h.ForgotPassword)
		password.POST("/reset-password/:id/:token", h.ResetPassword)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterUserRequest
	if !handler.Bind(c, &req) {
		return
	}

	session, err := h.svc.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, session)
}

func (h *Handler) Login(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	session, err := h.svc.LoginUser(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, session)
}

func (h *Handler) RegisterCaregiver(c *gin.Context) {
	var req model.RegisterCaregiverRequest
	if !handler.Bind(c, &req) {
		return
	}

	session, err := h.svc.RegisterCaregiver(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, session)
}

func (h *Handler) LoginCaregiver(c *gin.Context) {
	req, ok := bindLogin(c)
	if !ok {
		return
	}

	session, err := h.svc.LoginCaregiver(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, session)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if !handler.Bind(c, &req) {
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, checkInbox)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidToken(err))
		return
	}

	var req model.ResetPasswordRequest
	if !handler.Bind(c, &req) {
		return
	}

	resp, err := h.svc.ResetPassword(c.Request.Context(), id, c.Param("token"), req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, resp)
}

// bindLogin reports a password too short to ever match as wrong credentials,
// so a login attempt cannot tell the length rule apart from a mismatch.
func bindLogin(c *gin.Context) (*model.LoginRequest, bool) {
	var req model.LoginRequest
	err := handler.Decode(c, &req)
	if err == nil {
		return &req, true
	}
	if field, tag, ok := validation.Violation(err); ok && field == "password" && tag == "min" {
		err = auth.WrongCredentials()
	}
	httputil.RespondWithError(c, err)
	return nil, false
}

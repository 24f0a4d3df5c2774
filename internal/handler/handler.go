// Package handler holds the helpers every aggregate's gin handlers share.
package handler

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/middleware"
	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/validation"
	"github.com/jwalitptl/carelink-api/pkg/errors"
	"github.com/jwalitptl/carelink-api/pkg/httputil"
)

// Bind reads the request body into dst through the validation layer. On
// failure the error response is already written.
func Bind(c *gin.Context, dst interface{}) bool {
	if err := Decode(c, dst); err != nil {
		httputil.RespondWithError(c, err)
		return false
	}
	return true
}

// Decode is Bind without the response, for handlers that remap violations.
func Decode(c *gin.Context, dst interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				return errors.Validation("request body too large", err)
			}
			return errors.Validation("failed to read request body", err)
		}
	}
	return validation.Decode(body, dst)
}

// PathID parses the named path parameter. An id that cannot exist is reported
// as a missing resource.
func PathID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound(resource, err))
		return uuid.Nil, false
	}
	return id, true
}

// Principal returns the authenticated caller. Routes that call it sit behind
// Authenticate.
func Principal(c *gin.Context) model.Principal {
	principal, _ := middleware.GetPrincipal(c)
	return principal
}

// SortFrom reads ?sort=field or ?sort=-field.
func SortFrom(c *gin.Context) model.Sort {
	raw := c.Query("sort")
	if strings.HasPrefix(raw, "-") {
		return model.Sort{Field: raw[1:], Desc: true}
	}
	return model.Sort{Field: raw}
}

// QueryID reads an optional id filter. It writes a validation error and
// returns false when the value is present but malformed.
func QueryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.RespondWithError(c, errors.Validation(`"`+name+`" must be a valid id`, err))
		return nil, false
	}
	return &id, true
}

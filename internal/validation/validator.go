package validation

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validator checks request payloads. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// Default returns the process-wide validator.
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(availabilityStructLevel, model.AvailabilityRequest{})
	v.RegisterStructValidation(serviceRequestUpdateStructLevel, model.UpdateServiceRequestRequest{})

	return &Validator{validate: v}
}

func availabilityStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.AvailabilityRequest)
	if !clockPattern.MatchString(req.StartTime) || !clockPattern.MatchString(req.EndTime) {
		return
	}
	// HH:MM strings order lexically
	if req.EndTime <= req.StartTime {
		sl.ReportError(req.EndTime, "endTime", "EndTime", "after", "startTime")
	}
}

func serviceRequestUpdateStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.UpdateServiceRequestRequest)
	if req.CaregiverID == nil {
		return
	}
	if req.Status == nil || *req.Status != string(model.ServiceRequestStatusAccepted) {
		sl.ReportError(*req.CaregiverID, "caregiverId", "CaregiverID", "acceptedonly", "")
	}
}

// Decode strictly decodes body into dst (a pointer to a request struct),
// normalizes it and validates it. The first violation is returned as a
// validation_failure AppError.
func (v *Validator) Decode(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Validation(decodeMessage(err), err)
	}
	if dec.More() {
		return errors.Validation("request body must be a single JSON object", nil)
	}

	return v.Struct(dst)
}

// Struct normalizes and validates an already-decoded request.
func (v *Validator) Struct(dst interface{}) error {
	normalize(reflect.ValueOf(dst))

	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrs); !ok || len(fieldErrs) == 0 {
		return errors.Internal(fmt.Errorf("failed to validate request: %w", err))
	}
	return errors.Validation(message(fieldErrs[0]), err)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = fieldErrs
	}
	return ok
}

// Decode uses the default validator.
func Decode(body []byte, dst interface{}) error {
	return Default().Decode(body, dst)
}

// Violation reports the field and tag of the first rule err broke, when err
// came from struct validation.
func Violation(err error) (field, tag string, ok bool) {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "", "", false
	}
	return fieldPath(fieldErrs[0]), fieldErrs[0].Tag(), true
}

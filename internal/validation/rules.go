package validation

import (
	"fmt"
	"sort"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/pkg/errors"
)

// Operation names a rule set.
type Operation string

const (
	OpRegisterUser         Operation = "register user"
	OpLoginUser            Operation = "login user"
	OpUpdateUser           Operation = "update user"
	OpRegisterCaregiver    Operation = "register caregiver"
	OpLoginCaregiver       Operation = "login caregiver"
	OpUpdateCaregiver      Operation = "update caregiver"
	OpForgotPassword       Operation = "forgot password"
	OpResetPassword        Operation = "reset password"
	OpCreateAppointment    Operation = "create appointment"
	OpUpdateAppointment    Operation = "update appointment"
	OpCancelAppointment    Operation = "cancel appointment"
	OpCreateMedicalNote    Operation = "create medical note"
	OpUpdateMedicalNote    Operation = "update medical note"
	OpCreateServiceRequest Operation = "create service request"
	OpUpdateServiceRequest Operation = "update service request"
	OpSendMessage          Operation = "send message"
	OpSetAvailability      Operation = "set availability"
	OpCreateAuthor         Operation = "create author"
	OpUpdateAuthor         Operation = "update author"
	OpCreateBook           Operation = "create book"
	OpUpdateBook           Operation = "update book"
)

var rules = map[Operation]func() interface{}{
	OpRegisterUser:         func() interface{} { return &model.RegisterUserRequest{} },
	OpLoginUser:            func() interface{} { return &model.LoginRequest{} },
	OpUpdateUser:           func() interface{} { return &model.UpdateUserRequest{} },
	OpRegisterCaregiver:    func() interface{} { return &model.RegisterCaregiverRequest{} },
	OpLoginCaregiver:       func() interface{} { return &model.LoginRequest{} },
	OpUpdateCaregiver:      func() interface{} { return &model.UpdateCaregiverRequest{} },
	OpForgotPassword:       func() interface{} { return &model.ForgotPasswordRequest{} },
	OpResetPassword:        func() interface{} { return &model.ResetPasswordRequest{} },
	OpCreateAppointment:    func() interface{} { return &model.CreateAppointmentRequest{} },
	OpUpdateAppointment:    func() interface{} { return &model.UpdateAppointmentRequest{} },
	OpCancelAppointment:    func() interface{} { return &model.CancelAppointmentRequest{} },
	OpCreateMedicalNote:    func() interface{} { return &model.CreateMedicalNoteRequest{} },
	OpUpdateMedicalNote:    func() interface{} { return &model.UpdateMedicalNoteRequest{} },
	OpCreateServiceRequest: func() interface{} { return &model.CreateServiceRequestRequest{} },
	OpUpdateServiceRequest: func() interface{} { return &model.UpdateServiceRequestRequest{} },
	OpSendMessage:          func() interface{} { return &model.SendMessageRequest{} },
	OpSetAvailability:      func() interface{} { return &model.AvailabilityRequest{} },
	OpCreateAuthor:         func() interface{} { return &model.CreateAuthorRequest{} },
	OpUpdateAuthor:         func() interface{} { return &model.UpdateAuthorRequest{} },
	OpCreateBook:           func() interface{} { return &model.CreateBookRequest{} },
	OpUpdateBook:           func() interface{} { return &model.UpdateBookRequest{} },
}

// Validate checks payload against the named rule set and returns the
// normalized request (a pointer to the matching model request type).
func (v *Validator) Validate(op Operation, payload []byte) (interface{}, error) {
	newReq, ok := rules[op]
	if !ok {
		return nil, errors.Internal(fmt.Errorf("unknown validation operation %q", op))
	}
	req := newReq()
	if err := v.Decode(payload, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate uses the default validator.
func Validate(op Operation, payload []byte) (interface{}, error) {
	return Default().Validate(op, payload)
}

// Operations lists every known rule set, sorted.
func Operations() []Operation {
	ops := make([]Operation, 0, len(rules))
	for op := range rules {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

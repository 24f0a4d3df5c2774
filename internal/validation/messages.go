package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/carelink-api/internal/model"
)

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return boundMessage(field, fe, "at least", "greater than or equal to")
	case "max":
		return boundMessage(field, fe, "less than or equal to", "less than or equal to")
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%q must be a valid id", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(splitOneOf(fe.Param()), ", "))
	case "eq":
		return fmt.Sprintf("%q must be [%s]", field, fe.Param())
	case "clock":
		return fmt.Sprintf("%q must be a time in HH:MM format", field)
	case "after":
		return fmt.Sprintf("%q must be later than %q", field, fe.Param())
	case "acceptedonly":
		return fmt.Sprintf("%q is only allowed when \"status\" is accepted", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

func boundMessage(field string, fe validator.FieldError, lengthWord, numberWord string) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q length must be %s %s characters long", field, lengthWord, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%q must contain %s %s items", field, lengthWord, fe.Param())
	default:
		return fmt.Sprintf("%q must be %s %s", field, numberWord, fe.Param())
	}
}

// splitOneOf splits a oneof parameter, honouring single-quoted values.
func splitOneOf(param string) []string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range param {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

var timestampType = reflect.TypeOf(model.Timestamp{})

func decodeMessage(err error) string {
	switch e := err.(type) {
	case *json.SyntaxError:
		return "request body is not valid JSON"
	case *json.UnmarshalTypeError:
		field := e.Field
		if field == "" {
			field = "value"
		}
		return fmt.Sprintf("%q must be %s", field, typeName(e.Type))
	}

	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return fmt.Sprintf("%s is not allowed", name)
	}
	if strings.Contains(msg, "unexpected EOF") {
		return "request body is not valid JSON"
	}
	return "request body is invalid"
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timestampType {
		return "a valid date"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

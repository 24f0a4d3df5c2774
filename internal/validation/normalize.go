package validation

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// normalize applies `normalize:"trim,lower"` and `default:"..."` tags in place.
func normalize(v reflect.Value) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct || v.Type() == timeType {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		normalizeField(v.Field(i), sf.Tag.Get("normalize"), sf.Tag.Get("default"))
	}
}

func normalizeField(f reflect.Value, ops, def string) {
	switch f.Kind() {
	case reflect.String:
		f.SetString(applyOps(f.String(), ops))
		if def != "" && f.String() == "" {
			f.SetString(def)
		}
	case reflect.Pointer:
		if f.IsNil() {
			return
		}
		if f.Elem().Kind() == reflect.String {
			f.Elem().SetString(applyOps(f.Elem().String(), ops))
			return
		}
		normalizeField(f.Elem(), ops, "")
	case reflect.Slice:
		for i := 0; i < f.Len(); i++ {
			normalizeField(f.Index(i), ops, "")
		}
	case reflect.Struct:
		normalize(f.Addr())
	}
}

func applyOps(s, ops string) string {
	if ops == "" {
		return s
	}
	for _, op := range strings.Split(ops, ",") {
		switch op {
		case "trim":
			s = strings.TrimSpace(s)
		case "lower":
			s = strings.ToLower(s)
		}
	}
	return s
}

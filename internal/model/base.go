package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base contains common fields for all top-level entities
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Sort orders a find by a whitelisted field.
type Sort struct {
	Field string
	Desc  bool
}

// Collection names a referenceable entity collection.
type Collection string

const (
	CollectionUsers      Collection = "users"
	CollectionCaregivers Collection = "caregivers"
	CollectionAuthors    Collection = "authors"
)

// UUIDs is a UUID[] column.
type UUIDs []uuid.UUID

func (u UUIDs) Value() (driver.Value, error) {
	arr := make(pq.StringArray, len(u))
	for i, id := range u {
		arr[i] = id.String()
	}
	return arr.Value()
}

func (u *UUIDs) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("failed to scan uuid array: %w", err)
	}
	out := make(UUIDs, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("failed to scan uuid array: %w", err)
		}
		out = append(out, id)
	}
	*u = out
	return nil
}

// Timestamp accepts RFC 3339 timestamps and plain YYYY-MM-DD dates in request bodies.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: "non-string", Type: reflect.TypeOf(t)}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return &json.UnmarshalTypeError{Value: "string " + s, Type: reflect.TypeOf(t)}
}

// scanJSON decodes a JSONB column into dst.
func scanJSON(src interface{}, dst interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
	return json.Unmarshal(data, dst)
}

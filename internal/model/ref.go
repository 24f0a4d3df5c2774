package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ref is a foreign-key field as returned to callers. Until a lookup is attempted
// it renders as the bare id; once resolved it renders as the projected fields
// plus "id"; when the referenced record is gone it renders as {"id":..., "ref":null}.
type Ref struct {
	ID     uuid.UUID
	Fields map[string]interface{}
	looked bool
}

// ResolvedRef returns a looked-up reference. Nil fields mark it dangling.
func ResolvedRef(id uuid.UUID, fields map[string]interface{}) Ref {
	return Ref{ID: id, Fields: fields, looked: true}
}

func (r Ref) Resolved() bool { return r.looked && r.Fields != nil }

func (r Ref) Dangling() bool { return r.looked && r.Fields == nil }

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.looked {
		return json.Marshal(r.ID)
	}
	if r.Fields == nil {
		return json.Marshal(map[string]interface{}{"id": r.ID, "ref": nil})
	}
	out := make(map[string]interface{}, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*r = Ref{}
		return json.Unmarshal(b, &r.ID)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	idStr, _ := raw["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid reference id: %w", err)
	}
	delete(raw, "id")

	if v, ok := raw["ref"]; ok && v == nil && len(raw) == 1 {
		*r = ResolvedRef(id, nil)
		return nil
	}
	*r = ResolvedRef(id, raw)
	return nil
}

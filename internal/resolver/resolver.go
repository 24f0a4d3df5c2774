// Package resolver swaps foreign-key ids for projections of the records they
// point to. Lookups are batched per collection so a list costs one query per
// referenced field.
package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

// Projection names the collection a reference points into and the fields to inline.
type Projection struct {
	Collection model.Collection
	Fields     []string
}

var (
	AppointmentCaregiver = Projection{model.CollectionCaregivers, []string{"username", "specialization", "phone"}}
	AppointmentPatient   = Projection{model.CollectionUsers, []string{"username", "phone"}}
	CancelledCaregiver   = Projection{model.CollectionCaregivers, []string{"username", "specialization"}}
	CancelledPatient     = Projection{model.CollectionUsers, []string{"username"}}
	NoteCaregiver        = Projection{model.CollectionCaregivers, []string{"username", "specialization"}}
	NotePatient          = Projection{model.CollectionUsers, []string{"username", "email"}}
	RequestPatient       = Projection{model.CollectionUsers, []string{"username", "phone", "email"}}
	RequestCaregiver     = Projection{model.CollectionCaregivers, []string{"username", "specialization", "phone"}}
	AssignedCaregiver    = Projection{model.CollectionCaregivers, []string{"username", "specialization", "phone"}}
	BookAuthor           = Projection{model.CollectionAuthors, []string{"fullName"}}

	// SenderFields are looked up among users first and caregivers second.
	SenderFields      = []string{"username", "avatar"}
	senderCollections = []model.Collection{model.CollectionUsers, model.CollectionCaregivers}
)

// Lookup holds the projected fields of every id that resolved.
type Lookup map[uuid.UUID]map[string]interface{}

// Ref renders id against the lookup; ids that did not resolve come back dangling.
func (l Lookup) Ref(id uuid.UUID) model.Ref {
	return model.ResolvedRef(id, l[id])
}

type Resolver struct {
	projectors map[model.Collection]repository.Projector
}

func New(users, caregivers, authors repository.Projector) *Resolver {
	return &Resolver{projectors: map[model.Collection]repository.Projector{
		model.CollectionUsers:      users,
		model.CollectionCaregivers: caregivers,
		model.CollectionAuthors:    authors,
	}}
}

// Lookup resolves ids against one projection in a single round trip.
func (r *Resolver) Lookup(ctx context.Context, p Projection, ids []uuid.UUID) (Lookup, error) {
	projector, ok := r.projectors[p.Collection]
	if !ok || projector == nil {
		return nil, fmt.Errorf("no projector for collection %q", p.Collection)
	}
	ids = unique(ids)
	if len(ids) == 0 {
		return Lookup{}, nil
	}
	found, err := projector.Project(ctx, ids, p.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", p.Collection, err)
	}
	return Lookup(found), nil
}

// LookupFirst tries each collection in turn, asking later ones only for the
// ids earlier ones did not resolve.
func (r *Resolver) LookupFirst(ctx context.Context, fields []string, ids []uuid.UUID, collections ...model.Collection) (Lookup, error) {
	out := Lookup{}
	pending := unique(ids)
	for _, coll := range collections {
		if len(pending) == 0 {
			break
		}
		found, err := r.Lookup(ctx, Projection{Collection: coll, Fields: fields}, pending)
		if err != nil {
			return nil, err
		}
		rest := pending[:0:0]
		for _, id := range pending {
			if projected, ok := found[id]; ok {
				out[id] = projected
			} else {
				rest = append(rest, id)
			}
		}
		pending = rest
	}
	return out, nil
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

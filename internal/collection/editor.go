// Package collection implements pure add/remove operations over the ordered
// entity collections a profile owns (education, projects, technologies, ...).
// Operations return fresh slices so callers can compare old and new state
// by value for dirty tracking.
package collection

import (
	"strings"

	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/profilehub/profilehub-client/pkg/identifier"
)

// Entity is an element of an editable collection. WithID returns a copy of the
// entity carrying the given id, keeping the operations value-semantic.
type Entity[T any] interface {
	GetID() identifier.EntityID
	WithID(id identifier.EntityID) T
	PrimaryText() string
}

// Append adds entry to the collection under a freshly generated draft id that
// is guaranteed distinct from every id already present. Entries whose primary
// text is blank are rejected so blank rows can never be added.
func Append[T Entity[T]](col []T, entry T) ([]T, error) {
	if strings.TrimSpace(entry.PrimaryText()) == "" {
		return nil, apperrors.InvalidInputError("text", "must not be blank")
	}

	id := identifier.NewDraft()
	for containsID(col, id) {
		id = identifier.NewDraft()
	}

	out := make([]T, 0, len(col)+1)
	out = append(out, col...)
	out = append(out, entry.WithID(id))
	return out, nil
}

// Remove filters out the entity with the given id, preserving order. When the
// id is not present the input collection is returned unchanged.
func Remove[T Entity[T]](col []T, id identifier.EntityID) []T {
	if !containsID(col, id) {
		return col
	}

	out := make([]T, 0, len(col)-1)
	for _, e := range col {
		if e.GetID() != id {
			out = append(out, e)
		}
	}
	return out
}

func containsID[T Entity[T]](col []T, id identifier.EntityID) bool {
	for _, e := range col {
		if e.GetID() == id {
			return true
		}
	}
	return false
}

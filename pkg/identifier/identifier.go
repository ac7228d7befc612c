package identifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// EntityID identifies a profile or one of its nested entities. Server-persisted
// entities carry a non-negative integer id; entities created locally and not yet
// saved carry a string draft token. Both shapes share one id space inside a
// collection, so the type keeps the distinction explicit instead of leaving it
// to runtime shape checks.
type EntityID struct {
	kind  kind
	num   int64
	token string
}

type kind int

const (
	kindAbsent kind = iota
	kindPersisted
	kindDraft
)

const draftPrefix = "draft-"

// None returns the absent id (JSON null). A profile that has never been saved
// has an absent root id.
func None() EntityID {
	return EntityID{kind: kindAbsent}
}

// Persisted wraps a server-assigned integer id. Zero is a valid persisted id.
func Persisted(n int64) EntityID {
	if n < 0 {
		return EntityID{kind: kindDraft, token: draftPrefix + strconv.FormatInt(n, 10)}
	}
	return EntityID{kind: kindPersisted, num: n}
}

// Draft wraps an existing draft token.
func Draft(token string) EntityID {
	return EntityID{kind: kindDraft, token: token}
}

// NewDraft generates a fresh draft id. UUID-backed tokens make the
// draft/persisted split a total partition of the id space rather than a
// probabilistic one.
func NewDraft() EntityID {
	return EntityID{kind: kindDraft, token: draftPrefix + uuid.NewString()}
}

// IsPersisted reports whether the id is a server-assigned integer.
func (id EntityID) IsPersisted() bool {
	return id.kind == kindPersisted
}

// IsDraft reports whether the id is a locally-generated placeholder.
func (id EntityID) IsDraft() bool {
	return id.kind == kindDraft
}

// IsAbsent reports whether no id is set at all.
func (id EntityID) IsAbsent() bool {
	return id.kind == kindAbsent
}

// Sanitize returns the id unchanged when persisted and the absent id otherwise,
// so the server can assign a real integer on save.
func (id EntityID) Sanitize() EntityID {
	if id.IsPersisted() {
		return id
	}
	return None()
}

// Int64 returns the persisted integer value. The second return is false for
// draft and absent ids.
func (id EntityID) Int64() (int64, bool) {
	if !id.IsPersisted() {
		return 0, false
	}
	return id.num, true
}

// String renders the id for logs and URLs.
func (id EntityID) String() string {
	switch id.kind {
	case kindPersisted:
		return strconv.FormatInt(id.num, 10)
	case kindDraft:
		return id.token
	default:
		return ""
	}
}

// MarshalJSON encodes persisted ids as integers, draft ids as strings and
// absent ids as null.
func (id EntityID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case kindPersisted:
		return json.Marshal(id.num)
	case kindDraft:
		return json.Marshal(id.token)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the three wire shapes: integer, string token, null.
// A numeric value that round-trips as a non-negative integer is persisted;
// everything else is a draft token.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("entity id: %w", err)
	}

	switch v := raw.(type) {
	case nil:
		*id = None()
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil || n < 0 {
			*id = Draft(v.String())
			return nil
		}
		*id = EntityID{kind: kindPersisted, num: n}
	case string:
		*id = Draft(v)
	default:
		return fmt.Errorf("entity id: unsupported JSON value %s", data)
	}
	return nil
}

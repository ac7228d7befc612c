package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/profilehub/profilehub-client/pkg/identifier"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// User is the owning user of a profile. Only read for display and
// authorization gating, never mutated by this client.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile is the root resume document. A master profile is the user's
// canonical profile; sub-profiles are derived from it.
type Profile struct {
	ID            identifier.EntityID `json:"id"`
	Name          string              `json:"name" validate:"required,notblank"`
	MasterProfile bool                `json:"masterProfile"`
	User          *User               `json:"user,omitempty"`
	CreatedDate   *time.Time          `json:"createdDate,omitempty"`

	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Headline string `json:"headline"`
	Bio      string `json:"bio"`

	Education   []Education   `json:"education"`
	Projects    []Project     `json:"projects"`
	WorkHistory []WorkHistory `json:"workHistory"`
	Skills      []Entry       `json:"skills"`
	BulletList  []Entry       `json:"bulletList"`
}

// Entry is a simple text-valued entity used for skills, bullet points and
// technology tags.
type Entry struct {
	ID   identifier.EntityID `json:"id"`
	Text string              `json:"text"`
}

// Education is a single education history item.
type Education struct {
	ID        identifier.EntityID `json:"id"`
	School    string              `json:"school"`
	Degree    string              `json:"degree"`
	StartDate string              `json:"startDate,omitempty"`
	EndDate   string              `json:"endDate,omitempty"`
}

// Project is a single project item with its own technology tags.
type Project struct {
	ID           identifier.EntityID `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Type         string              `json:"type"`
	StartDate    string              `json:"startDate,omitempty"`
	EndDate      string              `json:"endDate,omitempty"`
	Technologies []Entry             `json:"technologies"`
}

// WorkHistory is a single job item with its own technology tags.
type WorkHistory struct {
	ID           identifier.EntityID `json:"id"`
	Company      string              `json:"company"`
	Position     string              `json:"position"`
	Description  string              `json:"description"`
	StartDate    string              `json:"startDate,omitempty"`
	EndDate      string              `json:"endDate,omitempty"`
	Technologies []Entry             `json:"technologies"`
}

// EmptyProfile returns the template for a brand new, never-saved profile.
func EmptyProfile() *Profile {
	return &Profile{
		ID:          identifier.None(),
		Education:   []Education{},
		Projects:    []Project{},
		WorkHistory: []WorkHistory{},
		Skills:      []Entry{},
		BulletList:  []Entry{},
	}
}

// Clone returns a deep copy of the profile. The copy shares no slice or
// pointer state with the original, so edits to one never leak into the other.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	out := *p

	if p.User != nil {
		u := *p.User
		out.User = &u
	}
	if p.CreatedDate != nil {
		t := *p.CreatedDate
		out.CreatedDate = &t
	}

	out.Education = cloneSlice(p.Education, func(e Education) Education { return e })
	out.Skills = cloneSlice(p.Skills, func(e Entry) Entry { return e })
	out.BulletList = cloneSlice(p.BulletList, func(e Entry) Entry { return e })
	out.Projects = cloneSlice(p.Projects, func(pr Project) Project {
		pr.Technologies = cloneSlice(pr.Technologies, func(e Entry) Entry { return e })
		return pr
	})
	out.WorkHistory = cloneSlice(p.WorkHistory, func(w WorkHistory) WorkHistory {
		w.Technologies = cloneSlice(w.Technologies, func(e Entry) Entry { return e })
		return w
	})

	return &out
}

func cloneSlice[T any](in []T, copyFn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = copyFn(v)
	}
	return out
}

// Validate checks the profile against its field rules. Only the name is
// required client-side; the server remains the final arbiter.
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// GetID implements collection.Entity.
func (e Entry) GetID() identifier.EntityID { return e.ID }

// WithID implements collection.Entity.
func (e Entry) WithID(id identifier.EntityID) Entry { e.ID = id; return e }

// PrimaryText implements collection.Entity.
func (e Entry) PrimaryText() string { return e.Text }

// GetID implements collection.Entity.
func (e Education) GetID() identifier.EntityID { return e.ID }

// WithID implements collection.Entity.
func (e Education) WithID(id identifier.EntityID) Education { e.ID = id; return e }

// PrimaryText implements collection.Entity.
func (e Education) PrimaryText() string { return e.School }

// GetID implements collection.Entity.
func (p Project) GetID() identifier.EntityID { return p.ID }

// WithID implements collection.Entity.
func (p Project) WithID(id identifier.EntityID) Project { p.ID = id; return p }

// PrimaryText implements collection.Entity.
func (p Project) PrimaryText() string { return p.Name }

// GetID implements collection.Entity.
func (w WorkHistory) GetID() identifier.EntityID { return w.ID }

// WithID implements collection.Entity.
func (w WorkHistory) WithID(id identifier.EntityID) WorkHistory { w.ID = id; return w }

// PrimaryText implements collection.Entity.
func (w WorkHistory) PrimaryText() string { return w.Company }

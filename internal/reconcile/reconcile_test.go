package reconcile_test

import (
	"reflect"
	"testing"

	"github.com/profilehub/profilehub-client/internal/models"
	"github.com/profilehub/profilehub-client/internal/reconcile"
	"github.com/profilehub/profilehub-client/pkg/identifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedProfile() *models.Profile {
	return &models.Profile{
		ID:   identifier.Persisted(7),
		Name: "Sam",
		Education: []models.Education{
			{ID: identifier.Persisted(1), School: "State University"},
			{ID: identifier.Draft("draft-edu"), School: "Night School"},
		},
		Projects: []models.Project{
			{
				ID: identifier.Draft("draft-proj"),
				Technologies: []models.Entry{
					{ID: identifier.Persisted(3), Text: "Go"},
					{ID: identifier.Draft("draft-tech"), Text: "Postgres"},
				},
			},
		},
		WorkHistory: []models.WorkHistory{
			{
				ID: identifier.Persisted(4),
				Technologies: []models.Entry{
					{ID: identifier.Draft("draft-wtech"), Text: "Redis"},
				},
			},
		},
		Skills:     []models.Entry{{ID: identifier.Draft("draft-skill"), Text: "SQL"}},
		BulletList: []models.Entry{{ID: identifier.Persisted(6), Text: "Did things"}},
	}
}

func TestToWire_ErasesDraftIDs(t *testing.T) {
	wire := reconcile.ToWire(mixedProfile())

	// Persisted ids survive untouched.
	assert.Equal(t, identifier.Persisted(1), wire.Education[0].ID)
	assert.Equal(t, identifier.Persisted(3), wire.Projects[0].Technologies[0].ID)
	assert.Equal(t, identifier.Persisted(4), wire.WorkHistory[0].ID)
	assert.Equal(t, identifier.Persisted(6), wire.BulletList[0].ID)

	// Draft ids are erased in every nested collection independently.
	assert.True(t, wire.Education[1].ID.IsAbsent())
	assert.True(t, wire.Projects[0].ID.IsAbsent())
	assert.True(t, wire.Projects[0].Technologies[1].ID.IsAbsent())
	assert.True(t, wire.WorkHistory[0].Technologies[0].ID.IsAbsent())
	assert.True(t, wire.Skills[0].ID.IsAbsent())
}

func TestToWire_RootIDUntouched(t *testing.T) {
	persisted := mixedProfile()
	assert.Equal(t, identifier.Persisted(7), reconcile.ToWire(persisted).ID)

	unsaved := mixedProfile()
	unsaved.ID = identifier.None()
	assert.True(t, reconcile.ToWire(unsaved).ID.IsAbsent())
}

func TestToWire_DoesNotMutateInput(t *testing.T) {
	draft := mixedProfile()
	snapshot := draft.Clone()

	_ = reconcile.ToWire(draft)

	require.True(t, reflect.DeepEqual(snapshot, draft))
}

func TestToWire_Nil(t *testing.T) {
	assert.Nil(t, reconcile.ToWire(nil))
}

func TestFromServer_Identity(t *testing.T) {
	doc := mixedProfile()
	assert.Same(t, doc, reconcile.FromServer(doc))
}

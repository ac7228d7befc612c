// Package reconcile translates profile documents between the server's
// persisted form and the locally edited form. Draft ids exist only on the
// client, so every outbound document is scrubbed of them before it hits the
// wire.
package reconcile

import (
	"github.com/profilehub/profilehub-client/internal/models"
)

// FromServer ingests a server document. Server documents arrive already
// normalized (integer or null ids), so this is an identity pass-through kept
// as the single ingestion point.
func FromServer(doc *models.Profile) *models.Profile {
	return doc
}

// ToWire deep-clones the draft and erases every draft id inside the nested
// collections so the server can assign real integers. The root profile id is
// left untouched: it drives create-versus-update routing. The input is never
// mutated; callers keep editing the original draft even if the send fails.
func ToWire(draft *models.Profile) *models.Profile {
	if draft == nil {
		return nil
	}

	wire := draft.Clone()

	for i := range wire.Education {
		wire.Education[i].ID = wire.Education[i].ID.Sanitize()
	}
	for i := range wire.Skills {
		wire.Skills[i].ID = wire.Skills[i].ID.Sanitize()
	}
	for i := range wire.BulletList {
		wire.BulletList[i].ID = wire.BulletList[i].ID.Sanitize()
	}
	for i := range wire.Projects {
		wire.Projects[i].ID = wire.Projects[i].ID.Sanitize()
		for j := range wire.Projects[i].Technologies {
			wire.Projects[i].Technologies[j].ID = wire.Projects[i].Technologies[j].ID.Sanitize()
		}
	}
	for i := range wire.WorkHistory {
		wire.WorkHistory[i].ID = wire.WorkHistory[i].ID.Sanitize()
		for j := range wire.WorkHistory[i].Technologies {
			wire.WorkHistory[i].Technologies[j].ID = wire.WorkHistory[i].Technologies[j].ID.Sanitize()
		}
	}

	return wire
}

package session

import (
	"strconv"

	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
)

// Route identifiers with special meaning beside plain integer ids.
const (
	routeNew    = "new"
	routeMaster = "master"
)

// Route is the parsed profile route parameter: a persisted integer id, the
// master alias, or the new-profile token.
type Route struct {
	raw string
	id  int64
}

// ParseRoute validates a raw route parameter.
func ParseRoute(param string) (Route, error) {
	switch param {
	case routeNew, routeMaster:
		return Route{raw: param}, nil
	}
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id < 0 {
		return Route{}, apperrors.InvalidInputError("profileId", "must be an integer id, \"master\" or \"new\"")
	}
	return Route{raw: param, id: id}, nil
}

// NewProfileRoute addresses a brand new, unsaved profile.
func NewProfileRoute() Route {
	return Route{raw: routeNew}
}

// MasterRoute addresses the current user's master profile by alias.
func MasterRoute() Route {
	return Route{raw: routeMaster}
}

// ProfileRoute addresses an existing profile by persisted id.
func ProfileRoute(id int64) Route {
	return Route{raw: strconv.FormatInt(id, 10), id: id}
}

// IsNew reports whether the route addresses an unsaved profile.
func (r Route) IsNew() bool {
	return r.raw == routeNew
}

// IsMaster reports whether the route uses the master alias.
func (r Route) IsMaster() bool {
	return r.raw == routeMaster
}

// ProfileID returns the persisted id when the route is numeric.
func (r Route) ProfileID() (int64, bool) {
	if r.IsNew() || r.IsMaster() {
		return 0, false
	}
	return r.id, true
}

func (r Route) String() string {
	return r.raw
}

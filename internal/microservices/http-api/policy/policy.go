// Package policy decides who may do what. Every check is a pure function of
// an Actor, the HTTP method and, for object-level checks, the author id.
package policy

import "net/http"

// Actor describes the caller of a request.
type Actor struct {
	UserID        uint
	Username      string
	Role          string
	Authenticated bool
	Superuser     bool
}

// Anonymous is the actor for requests without a bearer token.
func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role == "admin"
}

func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == "moderator"
}

func (a Actor) IsAdminOrSuperuser() bool {
	return a.IsAdmin() || (a.Authenticated && a.Superuser)
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Forbid(reason string) Decision {
	return Decision{Reason: reason}
}

// IsSafeMethod reports whether method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// RequestCheck is a request-level decision, evaluated before any object is loaded.
type RequestCheck func(a Actor, method string) Decision

// MayAccessIdentity guards the user management endpoints. Reads are included:
// listing users exposes emails.
func MayAccessIdentity(a Actor, _ string) Decision {
	if a.IsAdminOrSuperuser() {
		return Allow()
	}
	return Forbid("admin or superuser role required")
}

// MayAccessCatalog lets everyone read categories, genres and titles; only admins write.
func MayAccessCatalog(a Actor, method string) Decision {
	if IsSafeMethod(method) || a.IsAdmin() {
		return Allow()
	}
	return Forbid("admin role required")
}

// MayAccessAuthored is the request-level check for reviews and comments.
func MayAccessAuthored(a Actor, method string) Decision {
	if IsSafeMethod(method) || a.Authenticated {
		return Allow()
	}
	return Forbid("authentication required")
}

// MayActOnAuthored is the object-level check for a review or comment written by authorID.
func MayActOnAuthored(a Actor, method string, authorID uint) Decision {
	switch {
	case IsSafeMethod(method):
		return Allow()
	case !a.Authenticated:
		return Forbid("authentication required")
	case a.UserID == authorID:
		return Allow()
	case a.IsAdmin(), a.IsModerator(), a.Superuser:
		return Allow()
	}
	return Forbid("only the author, a moderator or an admin may change this")
}

// MayAccessProfile guards /users/me.
func MayAccessProfile(a Actor, _ string) Decision {
	if a.Authenticated {
		return Allow()
	}
	return Forbid("authentication required")
}

// CanChangeOwnRole reports whether a self-update may touch the role field.
func CanChangeOwnRole(a Actor) bool {
	return a.IsAdmin()
}

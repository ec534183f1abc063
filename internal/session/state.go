package session

import (
	"fmt"
	"time"
)

// Session is the decoded identity of the logged-in user.
type Session struct {
	UserID    int64
	IsAdmin   bool
	ExpiresAt time.Time
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// Role is the display name of the session's role.
func (s Session) Role() string {
	if s.IsAdmin {
		return "Admin"
	}
	return "Customer"
}

// Kind discriminates State.
type Kind int

const (
	// KindUnknown: startup restore has not finished. Consumers must not redirect.
	KindUnknown Kind = iota
	KindAbsent
	KindPresent
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindPresent:
		return "present"
	default:
		return "unknown"
	}
}

// State is the tagged session state: Unknown, Absent, or Present(Session).
type State struct {
	kind    Kind
	session Session
}

func Unknown() State { return State{kind: KindUnknown} }

func Absent() State { return State{kind: KindAbsent} }

func Present(s Session) State { return State{kind: KindPresent, session: s} }

func (s State) Kind() Kind { return s.kind }

// Session returns the session when the state is Present.
func (s State) Session() (Session, bool) {
	return s.session, s.kind == KindPresent
}

func (s State) IsUnknown() bool { return s.kind == KindUnknown }

func (s State) IsPresent() bool { return s.kind == KindPresent }

func (s State) IsAdmin() bool { return s.kind == KindPresent && s.session.IsAdmin }

func (s State) String() string {
	if s.kind == KindPresent {
		return fmt.Sprintf("present(user=%d admin=%t)", s.session.UserID, s.session.IsAdmin)
	}
	return s.kind.String()
}

// Destination is a navigation hint for the UI layer.
type Destination string

const (
	DestinationNone    Destination = ""
	DestinationLanding Destination = "landing"
	DestinationLogin   Destination = "login"
	DestinationUser    Destination = "user"
	DestinationAdmin   Destination = "admin"
)

// HomeFor is where a freshly logged-in session lands.
func HomeFor(s Session) Destination {
	if s.IsAdmin {
		return DestinationAdmin
	}
	return DestinationUser
}

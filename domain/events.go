package domain

import "time"

// SessionEventType identifies a session lifecycle transition.
type SessionEventType string

const (
	// SessionSignedIn fires whenever the session settles authenticated:
	// initial introspection, login, or registration.
	SessionSignedIn SessionEventType = "SESSION_SIGNED_IN"

	// SessionSignedOut fires whenever the session settles unauthenticated:
	// guest introspection, logout, or a role-gate rejection.
	SessionSignedOut SessionEventType = "SESSION_SIGNED_OUT"
)

// SessionEvent is published by the session manager on every settled
// transition. Dependent state (the cart) subscribes to stay consistent with
// the authentication state.
type SessionEvent struct {
	Type      SessionEventType
	User      *User
	Timestamp time.Time
}

// SessionSubscriber receives session events. Subscribers are invoked
// synchronously in subscription order and must not block.
type SessionSubscriber func(SessionEvent)

// NewSessionEvent builds an event stamped with the current time.
func NewSessionEvent(t SessionEventType, user *User) SessionEvent {
	return SessionEvent{Type: t, User: user, Timestamp: time.Now().UTC()}
}

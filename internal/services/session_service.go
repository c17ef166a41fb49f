package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/tambesec/networkstore/domain"
)

// SessionManager implements domain.SessionService. It owns the in-memory
// user, which always mirrors the last successful session, login, register,
// or profile-update response.
type SessionManager struct {
	authGW     domain.AuthGateway
	roleGate   domain.RoleGate
	logoutGate domain.LogoutGate
	nav        domain.Navigator
	signInPath string

	mu    sync.RWMutex
	state domain.SessionState
	user  *domain.User
	subs  []domain.SessionSubscriber
}

// NewSessionManager creates a session manager in the loading state.
func NewSessionManager(
	authGW domain.AuthGateway,
	roleGate domain.RoleGate,
	logoutGate domain.LogoutGate,
	nav domain.Navigator,
	signInPath string,
) *SessionManager {
	return &SessionManager{
		authGW:     authGW,
		roleGate:   roleGate,
		logoutGate: logoutGate,
		nav:        nav,
		signInPath: signInPath,
		state:      domain.SessionLoading,
	}
}

// LoadSession performs the initial session introspection. The endpoint never
// fails with an auth error; any failure settles the session as a guest.
func (s *SessionManager) LoadSession(ctx context.Context) error {
	info, err := s.authGW.Session(ctx)
	if err != nil {
		log.Printf("SESSION_LOAD_FAILED: error=%v", err)
		s.settleUnauthenticated()
		return nil
	}

	if !info.Authenticated || info.User == nil {
		s.settleUnauthenticated()
		return nil
	}

	if !s.roleAllowed(info.User.Role) {
		// Clear the foreign session server-side, best effort.
		if err := s.authGW.Logout(ctx); err != nil {
			log.Printf("SESSION_CLEANUP_FAILED: error=%v", err)
		}
		log.Printf("SESSION_ROLE_REJECTED: user_id=%d role=%s", info.User.ID, info.User.Role)
		s.settleUnauthenticated()
		return nil
	}

	s.settleAuthenticated(info.User)
	log.Printf("SESSION_LOADED: user_id=%d email=%s", info.User.ID, info.User.Email)
	return nil
}

// Login authenticates with email and password. The backend sets the session
// cookies; the returned user becomes the in-memory session.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.authGW.Login(ctx, email, password)
	if err != nil {
		s.settleUnauthenticated()
		log.Printf("USER_LOGIN_FAILED: email=%s error=%v", email, err)
		return nil, err
	}
	if user == nil {
		s.settleUnauthenticated()
		return nil, fmt.Errorf("login failed: empty response")
	}

	// A stale logout flag would suppress refreshes for the new session.
	s.logoutGate.SetLoggingOut(false)

	if !s.roleAllowed(user.Role) {
		if err := s.authGW.Logout(ctx); err != nil {
			log.Printf("SESSION_CLEANUP_FAILED: error=%v", err)
		}
		s.settleUnauthenticated()
		log.Printf("USER_LOGIN_REJECTED: user_id=%d role=%s", user.ID, user.Role)
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrRoleNotAllowed)
	}

	s.settleAuthenticated(user)
	log.Printf("USER_LOGIN: user_id=%d email=%s", user.ID, user.Email)
	return user, nil
}

// Register creates an account and signs it in.
func (s *SessionManager) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	user, err := s.authGW.Register(ctx, req)
	if err != nil {
		s.settleUnauthenticated()
		log.Printf("USER_REGISTRATION_FAILED: email=%s error=%v", req.Email, err)
		return nil, err
	}
	if user == nil {
		s.settleUnauthenticated()
		return nil, fmt.Errorf("registration failed: empty response")
	}

	s.logoutGate.SetLoggingOut(false)

	if !s.roleAllowed(user.Role) {
		if err := s.authGW.Logout(ctx); err != nil {
			log.Printf("SESSION_CLEANUP_FAILED: error=%v", err)
		}
		s.settleUnauthenticated()
		log.Printf("USER_REGISTRATION_REJECTED: user_id=%d role=%s", user.ID, user.Role)
		return nil, fmt.Errorf("registration failed, please try again: %w", domain.ErrRoleNotAllowed)
	}

	s.settleAuthenticated(user)
	log.Printf("USER_REGISTERED: user_id=%d email=%s", user.ID, user.Email)
	return user, nil
}

// Logout clears the session. The backend call is best effort; local state is
// cleared and navigation moves to the sign-in page regardless of outcome.
func (s *SessionManager) Logout(ctx context.Context) error {
	s.logoutGate.SetLoggingOut(true)

	if err := s.authGW.Logout(ctx); err != nil {
		log.Printf("USER_LOGOUT_API_FAILED: error=%v", err)
	}

	s.settleUnauthenticated()
	log.Printf("USER_LOGOUT: redirect=%s", s.signInPath)

	if s.nav != nil {
		s.nav.Redirect(s.signInPath)
	}
	// Arrival at the sign-in page clears the logging-out switch.
	s.logoutGate.SetLoggingOut(false)
	return nil
}

// UpdateProfile applies a partial profile change and merges the canonical
// response into the session.
func (s *SessionManager) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error) {
	s.mu.RLock()
	current := s.user
	s.mu.RUnlock()
	if current == nil {
		return nil, domain.ErrNotAuthenticated
	}

	updated, err := s.authGW.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return current, nil
	}

	// The backend may omit fields it did not touch; keep the known values.
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = current.CreatedAt
	}
	if !updated.EmailVerified {
		updated.EmailVerified = current.EmailVerified
	}
	if len(updated.OAuthProviders) == 0 {
		updated.OAuthProviders = current.OAuthProviders
	}
	if !updated.IsOAuthUser {
		updated.IsOAuthUser = current.IsOAuthUser
	}

	s.mu.Lock()
	s.user = updated
	s.mu.Unlock()

	log.Printf("PROFILE_UPDATED: user_id=%d", updated.ID)
	return updated, nil
}

// CurrentUser returns the in-memory user, nil for guests.
func (s *SessionManager) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// State returns the session lifecycle state.
func (s *SessionManager) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionManager) IsAuthenticated() bool {
	return s.State() == domain.SessionAuthenticated
}

// Subscribe registers a session-event subscriber.
func (s *SessionManager) Subscribe(fn domain.SessionSubscriber) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *SessionManager) roleAllowed(role string) bool {
	allowed, err := s.roleGate.Allow(role)
	if err != nil {
		log.Printf("ROLE_GATE_ERROR: role=%s error=%v", role, err)
		return false
	}
	return allowed
}

func (s *SessionManager) settleAuthenticated(user *domain.User) {
	s.mu.Lock()
	s.state = domain.SessionAuthenticated
	s.user = user
	s.mu.Unlock()
	s.publish(domain.NewSessionEvent(domain.SessionSignedIn, user))
}

func (s *SessionManager) settleUnauthenticated() {
	s.mu.Lock()
	s.state = domain.SessionUnauthenticated
	s.user = nil
	s.mu.Unlock()
	s.publish(domain.NewSessionEvent(domain.SessionSignedOut, nil))
}

func (s *SessionManager) publish(ev domain.SessionEvent) {
	s.mu.RLock()
	subs := make([]domain.SessionSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

var _ domain.SessionService = (*SessionManager)(nil)

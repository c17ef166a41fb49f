package mocks

import (
	"context"
	"sync"

	"github.com/tambesec/networkstore/domain"
)

// MockRoleGate implements domain.RoleGate. By default only customers pass.
type MockRoleGate struct {
	AllowFunc func(role string) (bool, error)
}

func (m *MockRoleGate) Allow(role string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(role)
	}
	return role == domain.RoleCustomer, nil
}

// MockNavigator implements domain.Navigator and records redirects.
type MockNavigator struct {
	mu        sync.Mutex
	Path      string
	Redirects []string
}

func (m *MockNavigator) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Path == "" {
		return "/"
	}
	return m.Path
}

func (m *MockNavigator) Redirect(path string) {
	m.mu.Lock()
	m.Redirects = append(m.Redirects, path)
	m.Path = path
	m.mu.Unlock()
}

// LastRedirect returns the most recent redirect target, empty when none.
func (m *MockNavigator) LastRedirect() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Redirects) == 0 {
		return ""
	}
	return m.Redirects[len(m.Redirects)-1]
}

// MockLogoutGate implements domain.LogoutGate.
type MockLogoutGate struct {
	mu         sync.Mutex
	loggingOut bool
	SetCalls   []bool
}

func (m *MockLogoutGate) SetLoggingOut(v bool) {
	m.mu.Lock()
	m.loggingOut = v
	m.SetCalls = append(m.SetCalls, v)
	m.mu.Unlock()
}

func (m *MockLogoutGate) LoggingOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggingOut
}

// MockSessionService implements domain.SessionService for service tests that
// only need the authentication flag and the event feed.
type MockSessionService struct {
	Authenticated bool
	User          *domain.User

	LoadSessionFunc func(ctx context.Context) error
	LoginFunc       func(ctx context.Context, email, password string) (*domain.User, error)
	LogoutFunc      func(ctx context.Context) error

	mu   sync.Mutex
	subs []domain.SessionSubscriber
}

func (m *MockSessionService) LoadSession(ctx context.Context) error {
	if m.LoadSessionFunc != nil {
		return m.LoadSessionFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	m.Authenticated = true
	return m.User, nil
}

func (m *MockSessionService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	m.Authenticated = true
	return m.User, nil
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	m.Authenticated = false
	return nil
}

func (m *MockSessionService) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error) {
	return m.User, nil
}

func (m *MockSessionService) CurrentUser() *domain.User {
	if !m.Authenticated {
		return nil
	}
	return m.User
}

func (m *MockSessionService) State() domain.SessionState {
	if m.Authenticated {
		return domain.SessionAuthenticated
	}
	return domain.SessionUnauthenticated
}

func (m *MockSessionService) IsAuthenticated() bool { return m.Authenticated }

func (m *MockSessionService) Subscribe(fn domain.SessionSubscriber) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// Publish feeds an event to every subscriber, standing in for the real
// session manager's lifecycle transitions.
func (m *MockSessionService) Publish(ev domain.SessionEvent) {
	m.mu.Lock()
	subs := make([]domain.SessionSubscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

var (
	_ domain.RoleGate       = (*MockRoleGate)(nil)
	_ domain.Navigator      = (*MockNavigator)(nil)
	_ domain.LogoutGate     = (*MockLogoutGate)(nil)
	_ domain.SessionService = (*MockSessionService)(nil)
)

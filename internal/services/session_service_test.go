package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tambesec/networkstore/domain"
	"github.com/tambesec/networkstore/internal/mocks"
)

func newSessionFixture() (*SessionManager, *mocks.MockAuthGateway, *mocks.MockLogoutGate, *mocks.MockNavigator) {
	authGW := &mocks.MockAuthGateway{}
	logoutGate := &mocks.MockLogoutGate{}
	nav := &mocks.MockNavigator{}
	mgr := NewSessionManager(authGW, &mocks.MockRoleGate{}, logoutGate, nav, "/signin")
	return mgr, authGW, logoutGate, nav
}

func customer() *domain.User {
	return &domain.User{ID: 10, Email: "lan@example.com", FullName: "Lan Pham", Role: domain.RoleCustomer}
}

func admin() *domain.User {
	return &domain.User{ID: 1, Email: "root@example.com", Role: domain.RoleAdmin}
}

func TestLoadSession(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(gw *mocks.MockAuthGateway)
		wantState  domain.SessionState
		wantUser   bool
		wantLogout int
	}{
		{
			name: "authenticated customer settles in",
			setupMocks: func(gw *mocks.MockAuthGateway) {
				gw.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
					return &domain.SessionInfo{Authenticated: true, User: customer()}, nil
				}
			},
			wantState: domain.SessionAuthenticated,
			wantUser:  true,
		},
		{
			name: "guest settles out",
			setupMocks: func(gw *mocks.MockAuthGateway) {
				gw.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
					return &domain.SessionInfo{Authenticated: false}, nil
				}
			},
			wantState: domain.SessionUnauthenticated,
		},
		{
			name: "network failure settles out without error",
			setupMocks: func(gw *mocks.MockAuthGateway) {
				gw.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantState: domain.SessionUnauthenticated,
		},
		{
			name: "admin session is rejected and cleaned up",
			setupMocks: func(gw *mocks.MockAuthGateway) {
				gw.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
					return &domain.SessionInfo{Authenticated: true, User: admin()}, nil
				}
			},
			wantState:  domain.SessionUnauthenticated,
			wantLogout: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, authGW, _, _ := newSessionFixture()
			tt.setupMocks(authGW)

			if err := mgr.LoadSession(context.Background()); err != nil {
				t.Fatalf("LoadSession() error = %v, want nil", err)
			}
			if mgr.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", mgr.State(), tt.wantState)
			}
			if got := mgr.CurrentUser() != nil; got != tt.wantUser {
				t.Errorf("CurrentUser() present = %v, want %v", got, tt.wantUser)
			}
			if authGW.LogoutCalls != tt.wantLogout {
				t.Errorf("logout calls = %d, want %d", authGW.LogoutCalls, tt.wantLogout)
			}
		})
	}
}

func TestLoginRejectsAdminWithCredentialsMessage(t *testing.T) {
	mgr, authGW, _, _ := newSessionFixture()
	authGW.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
		return admin(), nil
	}

	user, err := mgr.Login(context.Background(), "root@example.com", "secret")
	if user != nil {
		t.Error("Login() user != nil for rejected role")
	}
	if !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("Login() error = %v, want ErrRoleNotAllowed", err)
	}
	// The backend credentials were correct; the message must not say which
	// part failed beyond a generic credential error.
	if got := err.Error(); !strings.HasPrefix(got, "invalid email or password") {
		t.Errorf("Login() error message = %q, want credential-shaped prefix", got)
	}
	if authGW.LogoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1 (session cleanup)", authGW.LogoutCalls)
	}
	if mgr.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after rejected login")
	}
}

func TestLoginSuccessClearsLogoutFlag(t *testing.T) {
	mgr, authGW, logoutGate, _ := newSessionFixture()
	authGW.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
		return customer(), nil
	}
	logoutGate.SetLoggingOut(true)

	user, err := mgr.Login(context.Background(), "lan@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != 10 {
		t.Errorf("user.ID = %d, want 10", user.ID)
	}
	if logoutGate.LoggingOut() {
		t.Error("logging-out flag still set after successful login")
	}
	if !mgr.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
}

func TestLoginFailurePropagatesBackendError(t *testing.T) {
	mgr, authGW, _, _ := newSessionFixture()
	backendErr := &domain.APIError{StatusCode: 401, Message: "Invalid credentials"}
	authGW.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
		return nil, backendErr
	}

	_, err := mgr.Login(context.Background(), "lan@example.com", "wrong")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid credentials" {
		t.Fatalf("Login() error = %v, want backend message preserved", err)
	}
	if got := domain.APIMessage(err, "login failed"); got != "Invalid credentials" {
		t.Errorf("APIMessage() = %q, want backend message", got)
	}
	if mgr.State() != domain.SessionUnauthenticated {
		t.Errorf("State() = %v, want unauthenticated", mgr.State())
	}
}

func TestRegisterRejectsDisallowedRole(t *testing.T) {
	mgr, authGW, _, _ := newSessionFixture()
	authGW.RegisterFunc = func(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
		return admin(), nil
	}

	_, err := mgr.Register(context.Background(), domain.RegisterRequest{Email: "root@example.com"})
	if !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("Register() error = %v, want ErrRoleNotAllowed", err)
	}
	if authGW.LogoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1", authGW.LogoutCalls)
	}
}

func TestLogoutIsBestEffort(t *testing.T) {
	mgr, authGW, logoutGate, nav := newSessionFixture()
	authGW.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
		return &domain.SessionInfo{Authenticated: true, User: customer()}, nil
	}
	if err := mgr.LoadSession(context.Background()); err != nil {
		t.Fatal(err)
	}

	authGW.LogoutFunc = func(ctx context.Context) error {
		return errors.New("backend unreachable")
	}

	if err := mgr.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v, want nil despite backend failure", err)
	}
	if mgr.CurrentUser() != nil {
		t.Error("CurrentUser() != nil after logout")
	}
	if got := nav.LastRedirect(); got != "/signin" {
		t.Errorf("redirect = %q, want /signin", got)
	}
	// Flag raised for the duration of the logout, lowered on arrival.
	if len(logoutGate.SetCalls) != 2 || logoutGate.SetCalls[0] != true || logoutGate.SetCalls[1] != false {
		t.Errorf("logout flag transitions = %v, want [true false]", logoutGate.SetCalls)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		mgr, _, _, _ := newSessionFixture()
		_, err := mgr.UpdateProfile(context.Background(), domain.ProfileUpdate{FullName: "New Name"})
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("UpdateProfile() error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("merges sparse response with known fields", func(t *testing.T) {
		mgr, authGW, _, _ := newSessionFixture()
		existing := customer()
		existing.EmailVerified = true
		existing.OAuthProviders = []string{"google"}
		authGW.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
			return &domain.SessionInfo{Authenticated: true, User: existing}, nil
		}
		if err := mgr.LoadSession(context.Background()); err != nil {
			t.Fatal(err)
		}

		authGW.UpdateProfileFunc = func(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error) {
			return &domain.User{ID: 10, Email: existing.Email, FullName: req.FullName, Role: domain.RoleCustomer}, nil
		}

		updated, err := mgr.UpdateProfile(context.Background(), domain.ProfileUpdate{FullName: "Lan P."})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if updated.FullName != "Lan P." {
			t.Errorf("FullName = %q, want updated value", updated.FullName)
		}
		if !updated.EmailVerified {
			t.Error("EmailVerified lost in merge")
		}
		if len(updated.OAuthProviders) != 1 {
			t.Error("OAuthProviders lost in merge")
		}
	})
}

func TestSessionEventsReachSubscribers(t *testing.T) {
	mgr, authGW, _, _ := newSessionFixture()
	authGW.SessionFunc = func(ctx context.Context) (*domain.SessionInfo, error) {
		return &domain.SessionInfo{Authenticated: true, User: customer()}, nil
	}

	var events []domain.SessionEventType
	mgr.Subscribe(func(ev domain.SessionEvent) {
		events = append(events, ev.Type)
	})

	if err := mgr.LoadSession(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []domain.SessionEventType{domain.SessionSignedIn, domain.SessionSignedOut}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, events[i], want[i])
		}
	}
}

package authz

import (
	"testing"

	"github.com/tambesec/networkstore/domain"
)

func TestRoleGate(t *testing.T) {
	gate, err := NewRoleGate([]string{domain.RoleCustomer})
	if err != nil {
		t.Fatalf("NewRoleGate() error = %v", err)
	}

	tests := []struct {
		role string
		want bool
	}{
		{domain.RoleCustomer, true},
		{domain.RoleAdmin, false},
		{"moderator", false},
		{"", false},
		{"CUSTOMER", false},
	}
	for _, tt := range tests {
		got, err := gate.Allow(tt.role)
		if err != nil {
			t.Fatalf("Allow(%q) error = %v", tt.role, err)
		}
		if got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestRoleGateMultipleRoles(t *testing.T) {
	gate, err := NewRoleGate([]string{"customer", "vip"})
	if err != nil {
		t.Fatalf("NewRoleGate() error = %v", err)
	}

	for _, role := range []string{"customer", "vip"} {
		if ok, _ := gate.Allow(role); !ok {
			t.Errorf("Allow(%q) = false, want true", role)
		}
	}
	if ok, _ := gate.Allow("admin"); ok {
		t.Error("Allow(admin) = true, want false")
	}
}

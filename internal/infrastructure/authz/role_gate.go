package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/tambesec/networkstore/domain"
)

// The storefront client needs a single-dimension policy: which backend
// roles may hold a session here at all. Admin accounts must use the admin
// console, never this client.
const roleModel = `
[request_definition]
r = sub

[policy_definition]
p = sub

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub
`

// CasbinRoleGate implements domain.RoleGate with an in-memory enforcer.
type CasbinRoleGate struct {
	enforcer *casbin.Enforcer
}

// NewRoleGate builds a gate allowing exactly the given roles.
func NewRoleGate(allowedRoles []string) (*CasbinRoleGate, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("authz: role model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}
	for _, role := range allowedRoles {
		if _, err := e.AddPolicy(role); err != nil {
			return nil, fmt.Errorf("authz: add policy for role %q: %w", role, err)
		}
	}
	return &CasbinRoleGate{enforcer: e}, nil
}

// Allow reports whether a session with the given role may exist on this
// client.
func (g *CasbinRoleGate) Allow(role string) (bool, error) {
	return g.enforcer.Enforce(role)
}

var _ domain.RoleGate = (*CasbinRoleGate)(nil)

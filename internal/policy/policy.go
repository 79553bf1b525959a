package policy

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles are static: every user holds exactly one of these.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Policy is the single place authorization decisions are made. The enforcer
// is built once from the static rule set below; after construction every
// check is a deterministic in-memory lookup with no side effects.
//
// Admins inherit the manager scope and additionally may list users.
type Policy struct {
	enforcer *casbin.Enforcer
}

func New() (*Policy, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies([][]string{
		{RoleManager, "leaves", "read_all"},
		{RoleManager, "leaves", "decide"},
		{RoleAdmin, "users", "list"},
	}); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleManager); err != nil {
		return nil, err
	}

	return &Policy{enforcer: e}, nil
}

func (p *Policy) allowed(role, resource, action string) bool {
	ok, err := p.enforcer.Enforce(role, resource, action)
	return err == nil && ok
}

// CanViewAll reports whether a role may read every leave record. Employees
// are never denied a listing outright; the service silently scopes them to
// their own records instead.
func (p *Policy) CanViewAll(role string) bool {
	return p.allowed(role, "leaves", "read_all")
}

// CanDecide governs approve/reject.
func (p *Policy) CanDecide(role string) bool {
	return p.allowed(role, "leaves", "decide")
}

// CanListUsers is admin-only.
func (p *Policy) CanListUsers(role string) bool {
	return p.allowed(role, "users", "list")
}

// CanManageOwnRecord governs edit/delete/view-own of a single record by its
// owner, regardless of role.
func (p *Policy) CanManageOwnRecord(callerID, ownerID uint) bool {
	return callerID != 0 && callerID == ownerID
}

// ValidRole reports whether a role string is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Berkayssy/leave-management-system/internal/policy"
)

func TestPolicy_Roles(t *testing.T) {
	pol, err := policy.New()
	assert.NoError(t, err)

	t.Run("employee", func(t *testing.T) {
		assert.False(t, pol.CanViewAll(policy.RoleEmployee))
		assert.False(t, pol.CanDecide(policy.RoleEmployee))
		assert.False(t, pol.CanListUsers(policy.RoleEmployee))
	})

	t.Run("manager", func(t *testing.T) {
		assert.True(t, pol.CanViewAll(policy.RoleManager))
		assert.True(t, pol.CanDecide(policy.RoleManager))
		assert.False(t, pol.CanListUsers(policy.RoleManager))
	})

	t.Run("admin inherits manager", func(t *testing.T) {
		assert.True(t, pol.CanViewAll(policy.RoleAdmin))
		assert.True(t, pol.CanDecide(policy.RoleAdmin))
		assert.True(t, pol.CanListUsers(policy.RoleAdmin))
	})

	t.Run("unknown role gets nothing", func(t *testing.T) {
		assert.False(t, pol.CanViewAll("superuser"))
		assert.False(t, pol.CanDecide(""))
		assert.False(t, pol.CanListUsers("Admin"))
	})
}

func TestPolicy_CanManageOwnRecord(t *testing.T) {
	pol, err := policy.New()
	assert.NoError(t, err)

	assert.True(t, pol.CanManageOwnRecord(5, 5))
	assert.False(t, pol.CanManageOwnRecord(5, 8))
	assert.False(t, pol.CanManageOwnRecord(0, 0))
}

func TestValidRole(t *testing.T) {
	assert.True(t, policy.ValidRole(policy.RoleEmployee))
	assert.True(t, policy.ValidRole(policy.RoleManager))
	assert.True(t, policy.ValidRole(policy.RoleAdmin))
	assert.False(t, policy.ValidRole("manager "))
	assert.False(t, policy.ValidRole(""))
}

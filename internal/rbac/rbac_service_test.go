package rbac_test

import (
	"testing"

	"leavedesk/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"manager decides approvals", rbac.RoleManager, "approval", "decide", true},
		{"employee cannot decide approvals", rbac.RoleEmployee, "approval", "decide", false},
		{"employee creates leaves", rbac.RoleEmployee, "leave", "create", true},
		{"manager cannot create leaves", rbac.RoleManager, "leave", "create", false},
		{"admin wildcard covers balance create", rbac.RoleAdmin, "balance", "create", true},
		{"admin reads audit trail", rbac.RoleAdmin, "audit", "read", true},
		{"employee cannot read audit trail", rbac.RoleEmployee, "audit", "read", false},
		{"manager reads balances", rbac.RoleManager, "balance", "read", true},
		{"unknown role denied", "intern", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

package scoring_test

import (
	"testing"

	"ProjectScoreService/internal/models"
	"ProjectScoreService/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoles(t *testing.T) {
	roles := scoring.DefaultRoles()

	require.Len(t, roles, 18)
	seen := make(map[string]bool)
	for _, r := range roles {
		assert.False(t, seen[r.Key], "duplicate role %s", r.Key)
		seen[r.Key] = true
		assert.True(t, models.IsStakeholderField(r.Field), "role %s points at unknown field %s", r.Key, r.Field)
		assert.NotEmpty(t, r.Department)
	}
}

func TestRoleTableLookup(t *testing.T) {
	pm, spm := "SPM/PM", "pm"
	groups := []models.UserGroup{
		{ID: 4, Name: "Project Managers", RoleKey: &pm},
		{ID: 5, Name: "Other PMs", RoleKey: &spm},
		{ID: 6, Name: "Unbound"},
	}
	table := scoring.NewRoleTable(scoring.DefaultRoles(), groups)

	tests := []struct {
		name    string
		input   string
		groupID uint
		found   bool
	}{
		{"Exact Key", "SPM/PM", 4, true},
		{"Case Insensitive", "spm/pm", 4, true},
		{"Department Prefix", "Operations - SPM/PM", 4, true},
		{"Partial Key Does Not Match", "PM", 0, false},
		{"Known Role Without Group", "Sales Lead", 0, false},
		{"Unknown Role", "Astronaut", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, groupID, ok := table.Lookup(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.groupID, groupID)
		})
	}

	role, ok := table.Role("Sales Lead")
	require.True(t, ok)
	assert.Equal(t, "sales_lead", role.Field)
}

func TestRolesByDepartment(t *testing.T) {
	table := scoring.NewRoleTable(scoring.DefaultRoles(), nil)

	byDept := table.RolesByDepartment()

	require.Len(t, byDept["Design"], 4)
	assert.Equal(t, "ID", byDept["Design"][0].Key)
	assert.Len(t, byDept["Operations"], 6)
	assert.Len(t, byDept["Finance"], 1)
}

package scoring

import (
	"strings"

	"ProjectScoreService/internal/models"
)

// Role ties a leaderboard role to the project field naming its holder.
type Role struct {
	Key        string `json:"key"`
	Field      string `json:"field"`
	Link       string `json:"link"`
	Department string `json:"department"`
}

func DefaultRoles() []Role {
	return []Role{
		{Key: "Sales Lead", Field: "sales_lead", Link: "f_s_lead", Department: "Sales"},
		{Key: "Sales Head", Field: "sales_head", Link: "f_s_head", Department: "Sales"},

		{Key: "ID", Field: "design_id", Link: "f_d_id", Department: "Design"},
		{Key: "3D", Field: "design_3d", Link: "f_d_3d", Department: "Design"},
		{Key: "DM", Field: "design_dm", Link: "f_d_dm", Department: "Design"},
		{Key: "DH", Field: "design_dh", Link: "f_d_dh", Department: "Design"},

		{Key: "Cluster/BU Head", Field: "ops_head", Link: "f_o_head", Department: "Operations"},
		{Key: "SPM/PM", Field: "ops_pm", Link: "f_o_pm", Department: "Operations"},
		{Key: "SOM/OM", Field: "ops_om", Link: "f_o_om", Department: "Operations"},
		{Key: "SS", Field: "ops_ss", Link: "f_o_ss", Department: "Operations"},
		{Key: "MEP", Field: "ops_mep", Link: "f_o_mep", Department: "Operations"},
		{Key: "CSC", Field: "ops_csc", Link: "f_o_csc", Department: "Operations"},

		{Key: "Purchase Head", Field: "p_head", Link: "f_p_head", Department: "Purchase"},
		{Key: "Purchase Manager", Field: "p_mgr", Link: "f_p_mgr", Department: "Purchase"},
		{Key: "Purchase Executive", Field: "p_exec", Link: "f_p_exec", Department: "Purchase"},

		{Key: "Finance Head", Field: "f_head", Link: "f_f_head", Department: "Finance"},

		{Key: "Marketing Head", Field: "m_head", Link: "f_m_head", Department: "Marketing"},
		{Key: "Marketing Lead", Field: "m_lead", Link: "f_m_lead", Department: "Marketing"},
	}
}

type RoleTable struct {
	roles  []Role
	byKey  map[string]Role
	groups map[string]uint
}

// NewRoleTable binds roles to groups by exact, case-insensitive role key.
func NewRoleTable(roles []Role, groups []models.UserGroup) *RoleTable {
	t := &RoleTable{
		roles:  roles,
		byKey:  make(map[string]Role, len(roles)),
		groups: make(map[string]uint, len(groups)),
	}
	for _, r := range roles {
		t.byKey[normalizeKey(r.Key)] = r
	}
	for _, g := range groups {
		key := normalizeKey(g.RoleKeyValue())
		if key == "" {
			continue
		}
		if _, known := t.byKey[key]; known {
			t.groups[key] = g.ID
		}
	}
	return t
}

// Lookup accepts both "SPM/PM" and the "Operations - SPM/PM" form.
func (t *RoleTable) Lookup(name string) (Role, uint, bool) {
	key := normalizeKey(SimpleRoleName(name))
	role, ok := t.byKey[key]
	if !ok {
		return Role{}, 0, false
	}
	groupID, ok := t.groups[key]
	if !ok {
		return role, 0, false
	}
	return role, groupID, true
}

func (t *RoleTable) Role(name string) (Role, bool) {
	role, ok := t.byKey[normalizeKey(SimpleRoleName(name))]
	return role, ok
}

func (t *RoleTable) Roles() []Role {
	out := make([]Role, len(t.roles))
	copy(out, t.roles)
	return out
}

// RolesByDepartment keeps the table order inside each department.
func (t *RoleTable) RolesByDepartment() map[string][]Role {
	out := make(map[string][]Role)
	for _, r := range t.roles {
		out[r.Department] = append(out[r.Department], r)
	}
	return out
}

func SimpleRoleName(name string) string {
	if i := strings.LastIndex(name, " - "); i >= 0 {
		return name[i+3:]
	}
	return name
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

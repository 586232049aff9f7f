package auth

import "testing"

func TestRoleAllows(t *testing.T) {
	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleAdmin, PermCandidatesWrite, true},
		{RoleAdmin, PermVerificationWrite, true},
		{RoleRecruiter, PermCandidatesWrite, true},
		{RoleRecruiter, PermVerificationWrite, true},
		{RoleViewer, PermCandidatesRead, true},
		{RoleViewer, PermReportsRead, true},
		{RoleViewer, PermCandidatesWrite, false},
		{RoleViewer, PermVerificationWrite, false},
		{"Unknown", PermCandidatesRead, false},
		{"", PermCandidatesRead, false},
	}

	for _, tc := range cases {
		if got := RoleAllows(tc.role, tc.permission); got != tc.want {
			t.Errorf("RoleAllows(%q, %q) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestEveryRoleHasPermissions(t *testing.T) {
	for role, perms := range rolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}

package auth

const (
	RoleAdmin     = "Admin"
	RoleRecruiter = "Recruiter"
	RoleViewer    = "Viewer"
)

const (
	PermCandidatesRead    = "candidates.read"
	PermCandidatesWrite   = "candidates.write"
	PermVerificationWrite = "verification.write"
	PermReportsRead       = "reports.read"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermCandidatesRead,
		PermCandidatesWrite,
		PermVerificationWrite,
		PermReportsRead,
	},
	RoleRecruiter: {
		PermCandidatesRead,
		PermCandidatesWrite,
		PermVerificationWrite,
		PermReportsRead,
	},
	RoleViewer: {
		PermCandidatesRead,
		PermReportsRead,
	},
}

func RoleAllows(role, permission string) bool {
	for _, granted := range rolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}

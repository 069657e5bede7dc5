package models

// Principal is the authenticated identity carried through a request.
// It is reconstructed from token claims so handlers do not need a
// database round trip to check permissions.
type Principal struct {
	ID       string
	Username string
	Role     Role
	IsStaff  bool
}

func (p *Principal) HasAdminAccess() bool {
	return p.Role == RoleAdmin || p.IsStaff
}

func (p *Principal) CanModerate(authorID string) bool {
	return p.ID == authorID || p.Role == RoleModerator || p.HasAdminAccess()
}

package auth

// Gate authorizes the administrator-only workflows.
// A single configured user id is the administrator; 0 means nobody is.
type Gate struct {
	adminID int64
}

func New(adminID int64) *Gate {
	return &Gate{adminID: adminID}
}

func (g *Gate) IsAdmin(userID int64) bool {
	if g == nil || g.adminID == 0 {
		return false
	}
	return userID == g.adminID
}

func (g *Gate) AdminID() int64 {
	if g == nil {
		return 0
	}
	return g.adminID
}

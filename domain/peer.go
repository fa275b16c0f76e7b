package domain

// PeerRole gates visibility of a roster entry.
type PeerRole string

const (
	RoleFriend  PeerRole = "friend"
	RoleBlocked PeerRole = "blocked"
	RoleUnknown PeerRole = "unknown"
)

func (r PeerRole) Valid() bool {
	switch r {
	case RoleFriend, RoleBlocked, RoleUnknown:
		return true
	default:
		return false
	}
}

// Peer is a roster entry keyed by account id.
type Peer struct {
	AccountID ID
	Name      string
	Role      PeerRole
}

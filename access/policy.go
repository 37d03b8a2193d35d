// Package access decides whether a requester may see the full content of a
// premium-gated item. The decision is a pure function of the requester's
// subscription role and the item's own premium flag, so it can be applied
// independently at every granularity (topic, problem, flashcard).
package access

import "github.com/calcprep/calcprep-api/models"

// Role is the requester's effective subscription tier. Anonymous requests
// (no session) are distinct from free accounts only in name: both are the
// most restrictive tier.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleFree      Role = "free"
	RolePremium   Role = "premium"
)

type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
)

func (d Decision) Allowed() bool { return d == Allow }

// Decide is total and side-effect free: Deny iff the item is premium and
// the requester is not. Any role other than RolePremium, including unknown
// values, fails closed.
func Decide(role Role, itemIsPremium bool) Decision {
	if !itemIsPremium {
		return Allow
	}
	if role == RolePremium {
		return Allow
	}
	return Deny
}

// RoleFor maps an optional user record to its effective role. A nil user is
// anonymous; a stored role that is not recognized is treated as free rather
// than trusted.
func RoleFor(u *models.User) Role {
	if u == nil {
		return RoleAnonymous
	}
	if u.Role == models.RolePremium {
		return RolePremium
	}
	return RoleFree
}

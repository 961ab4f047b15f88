package authz

import "github.com/google/uuid"

var allCapabilities = []Capability{ContentWrite, MessagesRead, ProfilesManage, DashboardView}

// Principal là người gọi đã xác thực, capabilities được tính sẵn một lần khi auth
type Principal struct {
	ProfileID  uuid.UUID
	IdentityID string
	Email      string
	Role       Role
	caps       map[Capability]bool
}

func NewPrincipal(profileID uuid.UUID, identityID, email string, role Role, a Authorizer) *Principal {
	p := &Principal{
		ProfileID:  profileID,
		IdentityID: identityID,
		Email:      email,
		Role:       role,
		caps:       make(map[Capability]bool, len(allCapabilities)),
	}
	for _, c := range allCapabilities {
		if a.Can(role, c) {
			p.caps[c] = true
		}
	}
	return p
}

// Can trả về false với nil principal (anonymous)
func (p *Principal) Can(c Capability) bool {
	if p == nil {
		return false
	}
	return p.caps[c]
}

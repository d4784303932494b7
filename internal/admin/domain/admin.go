package domain

import "encoding/json"

// Permission 權限名稱，由 get_user_permissions 回傳
type Permission string

const (
	// PermManagePenalties apply penalties
	PermManagePenalties Permission = "manage_penalties"
	// PermManageRoles revoke roles
	PermManageRoles Permission = "manage_roles"
	// PermSuspendUsers suspend users
	PermSuspendUsers Permission = "suspend_users"
	// PermViewDashboard view admin dashboard
	PermViewDashboard Permission = "view_admin_dashboard"
)

// Permissions get_user_permissions payload
type Permissions struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// Has check permission
func (p *Permissions) Has(perm Permission) bool {
	if p == nil {
		return false
	}
	for _, v := range p.Permissions {
		if v == perm {
			return true
		}
	}
	return false
}

// PenaltyInput apply_user_penalty 參數
type PenaltyInput struct {
	PenaltyType string `json:"penaltyType"`
	Points      int    `json:"points"`
	Reason      string `json:"reason"`
}

// SuspendInput suspend_user 參數
type SuspendInput struct {
	Reason string `json:"reason"`
	Days   int    `json:"days"`
}

// Eligibility check_login_eligibility payload
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Payload 預存程序回傳的 JSON，原樣轉給 client
type Payload = json.RawMessage

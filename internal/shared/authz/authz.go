package authz

import "strings"

// Capability là quyền thao tác, route được guard theo capability thay vì role
type Capability string

const (
	// ContentWrite: tạo/sửa/xóa books, blogs, media, sponsors và xem bản nháp
	ContentWrite Capability = "content:write"
	// MessagesRead: đọc và quản lý contact messages
	MessagesRead Capability = "messages:read"
	// ProfilesManage: xem danh sách profile, sửa profile người khác, đổi role
	ProfilesManage Capability = "profiles:manage"
	// DashboardView: xem thống kê admin
	DashboardView Capability = "dashboard:view"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleMember Role = "member"
)

// ParseRole chuẩn hóa và kiểm tra role, false nếu không hợp lệ
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleEditor, RoleMember:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Authorizer quyết định một role có capability hay không
type Authorizer interface {
	Can(role Role, capability Capability) bool
}

// RoleAuthorizer map role → capabilities cố định
type RoleAuthorizer struct {
	grants map[Role]map[Capability]bool
}

// NewRoleAuthorizer trả về bảng quyền mặc định:
// admin có tất cả, editor có content:write + dashboard:view, member không có gì
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{
		grants: map[Role]map[Capability]bool{
			RoleAdmin: {
				ContentWrite:   true,
				MessagesRead:   true,
				ProfilesManage: true,
				DashboardView:  true,
			},
			RoleEditor: {
				ContentWrite:  true,
				DashboardView: true,
			},
			RoleMember: {},
		},
	}
}

func (a *RoleAuthorizer) Can(role Role, capability Capability) bool {
	return a.grants[role][capability]
}

package model

import (
	"strings"
	"time"
)

// Role is the access class attached to a credential.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOperator   Role = "operator"
	RoleTimekeeper Role = "timekeeper"
)

// Permission names a group of operations guarded at the HTTP boundary.
type Permission string

const (
	PermIssue  Permission = "issue"
	PermRedeem Permission = "redeem"
	PermReport Permission = "report"
	PermManage Permission = "manage"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:      {PermReport, PermManage},
	RoleOperator:   {PermRedeem, PermReport},
	RoleTimekeeper: {PermIssue, PermReport},
}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rolePermissions[r]
	return r, ok
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Allows reports whether the role grants p.
func (r Role) Allows(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// Credential is a dashboard login. PasswordHash is a bcrypt hash and never leaves the server.
type Credential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"displayName"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	Username string
	Role     Role
}

// CredentialRequest is the payload for creating a credential.
type CredentialRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// CredentialUpdate carries the fields to change; nil fields are left untouched.
type CredentialUpdate struct {
	Password    *string `json:"password,omitempty"`
	Role        *Role   `json:"role,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"displayName"`
}

package model

import "strings"

// Role is the closed set of account roles. Authorization checks compare
// against these constants, never against free-form strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCustomer:
		return RoleCustomer, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

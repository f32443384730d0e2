package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin = "admin"
	RoleSHG   = "shg"
	RoleBuyer = "buyer"
	RoleCSR   = "csr"
)

// ValidRole reports whether s is one of the four marketplace roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleSHG, RoleBuyer, RoleCSR:
		return true
	}
	return false
}

// Address postal address, Tamil Nadu by default.
type Address struct {
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
}

// User represents a marketplace identity: an admin, a processing unit (shg),
// a buyer or a CSR/government viewer.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Role         string // admin, shg, buyer, csr
	Phone        string
	Organization string
	Address      Address
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

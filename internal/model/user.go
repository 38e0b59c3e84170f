package model

import "time"

// Roles gate which operations a caller may perform. Members create and
// cancel their own bookings; staff review, check in and report.
const (
	RoleMember = "MEMBER"
	RoleStaff  = "STAFF"
)

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the repository layer; handlers
// define separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – RoleMember or RoleStaff.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

package model

// User is the subset of the `users` table the catalog needs.
// Credentials are owned by the identity service and never read here.
//
// Fields:
//  ID       – primary key identifier of the user.
//  Username – unique login name.
//  Role     – role name (CUSTOMER or ADMIN).
type User struct {
	ID       int64  // users.id
	Username string // users.username
	Role     string // users.role
}

// Role names carried in the users table and in access tokens.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

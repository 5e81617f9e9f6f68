// Package domain defines the identities the recommendation service works with: the user
// decoded from the internal authorization token and the reference data served by the
// authentication service.
package domain

// User is the caller of an API request, decoded from the internal authorization token.
// CompanyID scopes every recommendation the user can see.
type User struct {
	ID                 int64
	CompanyID          int64
	Email              string
	FirstName          string
	LastName           string
	HasFinancialAccess bool
}

// CheckAccess fails with ErrNoFinancialAccess unless the user may see recommendations.
func (u *User) CheckAccess() error {
	if !u.HasFinancialAccess {
		return ErrNoFinancialAccess
	}
	return nil
}

// AuthUser is a user record returned by the authentication service.
type AuthUser struct {
	ID        int64   `json:"id"`
	Role      *string `json:"role"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	CompanyID int64   `json:"company_id"`
}

// UsersQuery filters the users listed by the authentication service.
type UsersQuery struct {
	CompanyID          int64
	PermissionLevel    *string
	PermissionsFeature *string
}

// Company is the reference data of an account.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

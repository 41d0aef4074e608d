package model

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleFinance  = "FINANCE"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type User struct {
	ID                 string     `json:"userId"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	EmployeeID         string     `json:"employeeId,omitempty"`
	MustChangePassword bool       `json:"mustChangePassword"`
	LastLogin          *time.Time `json:"lastLogin,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type AuthClaims struct {
	UserID     string `json:"sub"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID string `json:"emp,omitempty"`
	TokenID    string `json:"jti"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	TokenType  string `json:"tokenType"`
	ExpiresIn  int64  `json:"expiresIn"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId,omitempty"`
}

// RegisteredUser is returned once, when an administrator creates an account.
type RegisteredUser struct {
	User
	TemporaryPassword string `json:"temporaryPassword"`
}

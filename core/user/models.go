package user

import (
	"encoding/json"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// Roles, as named by the remote API (`type` field of a user).
const (
	RoleAdmin   = "super_admin"
	RoleTeacher = "teacher"
	RoleStudent = "user"
)

// StatusSuspended is the account status that forbids posting comments and purchasing courses.
const StatusSuspended = "suspended"

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
	}

	homePaths = map[string]string{
		RoleAdmin:   "/dashboard/admin",
		RoleTeacher: "/dashboard/teacher",
		RoleStudent: "/dashboard/student",
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IsRole reports whether role is one of AllRoles.
func IsRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// HomePath is where a user having role lands after login.
func HomePath(role string) string {
	if p, ok := homePaths[role]; ok {
		return p
	}
	return "/"
}

type Wallet struct {
	ID            int         `json:"id,omitempty"`
	UserID        int         `json:"user_id,omitempty"`
	Balance       json.Number `json:"balance"` // the API sends either a number or a numeric string
	AccountNumber string      `json:"account_number,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
}

// Profile is the authenticated user as returned by `GET /profile` and `POST /login`.
type Profile struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Type      string  `json:"type"`
	Status    string  `json:"status,omitempty"`
	Photo     *string `json:"photo,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Address   *string `json:"address,omitempty"`
	Wallet    *Wallet `json:"wallet,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

func (p Profile) IsAdmin() bool     { return p.Type == RoleAdmin }
func (p Profile) IsTeacher() bool   { return p.Type == RoleTeacher }
func (p Profile) IsStudent() bool   { return p.Type == RoleStudent }
func (p Profile) IsSuspended() bool { return p.Status == StatusSuspended }

// User is a user as listed by the admin and teacher dashboards.
type User struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email,omitempty"`
	Type                 string  `json:"type,omitempty"`
	RoleID               *int    `json:"role_id,omitempty"`
	Status               string  `json:"status,omitempty"`
	Photo                *string `json:"photo,omitempty"`
	IsVerified           int     `json:"is_verified,omitempty"`
	IsSuperAdmin         bool    `json:"is_super_admin,omitempty"`
	EnrolledCoursesCount int     `json:"enrolled_courses_count,omitempty"`
	CreatedAt            string  `json:"created_at,omitempty"`
	UpdatedAt            string  `json:"updated_at,omitempty"`
}

// LoginInput contains the credentials needed to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (li *LoginInput) Clean() {
	li.Email = core.CleanString(li.Email, true /* lower */)
}

// RegisterInput contains information needed to register a new student or teacher.
type RegisterInput struct {
	Name                 string `json:"name" validate:"required,min=2"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	WalletPassword       string `json:"wallet_password" validate:"required,min=4"`
}

func (ri *RegisterInput) Clean() {
	ri.Name = core.CleanString(ri.Name)
	ri.Email = core.CleanString(ri.Email, true /* lower */)
}

// UpdateProfileInput defines what information may be provided to modify the current user's profile.
type UpdateProfileInput struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Address   string `json:"address,omitempty"`
}

func (ui *UpdateProfileInput) Clean() {
	ui.Name = core.CleanString(ui.Name)
	ui.Email = core.CleanString(ui.Email, true /* lower */)
	ui.Phone = core.CleanString(ui.Phone)
	ui.Address = core.CleanString(ui.Address)
}

// UpdateWalletInput changes the wallet account number and/or its password.
type UpdateWalletInput struct {
	AccountNumber     string `json:"account_number,omitempty"`
	OldWalletPassword string `json:"old_wallet_password,omitempty" validate:"required_with=NewWalletPassword"`
	NewWalletPassword string `json:"new_wallet_password,omitempty" validate:"omitempty,min=4"`
}

type WithdrawInput struct {
	Amount         float64 `json:"amount" validate:"gt=0"`
	WalletPassword string  `json:"wallet_password" validate:"required"`
}

type DepositInput struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

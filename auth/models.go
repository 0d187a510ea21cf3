package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	FirstName      string     `bun:"first_name,notnull" json:"firstName,omitempty"`
	LastName       string     `bun:"last_name,notnull" json:"lastName,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string     `bun:"phone_number,notnull,unique" json:"phone,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	IsActive       bool       `bun:"is_active" json:"isActive"`
	EmailVerified  bool       `bun:"is_email_verified" json:"isEmailVerified,omitempty"`
	PhoneVerified  bool       `bun:"is_phone_verified" json:"isPhoneVerified,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"-"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"-"`
	LastLoginAt    *time.Time `bun:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// PublicUser is the API projection of a user record. It never carries the
// password hash.
type PublicUser struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          UserRole   `json:"role"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"isEmailVerified"`
	PhoneVerified bool       `json:"isPhoneVerified"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Public returns the API safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID.String(),
		Email:         u.Email,
		Phone:         u.Phone,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

// Identity adapts the record to the Identity interface used by the token
// service.
func (u *User) Identity() Identity {
	return authIdentity{
		id:     u.ID.String(),
		email:  u.Email,
		role:   string(u.Role),
		active: u.IsActive,
	}
}

// user/model.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// Payment preference values accepted on a member profile.
const (
	PreferenceMonthly = "Monthly"
	PreferenceAnnual  = "Annual"
)

// Escalão tiers. Zero means no tier assigned; billing falls back to tier 2.
const (
	EscalaoNone = 0
	Escalao1    = 1
	Escalao2    = 2
)

type User struct {
	gorm.Model
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `gorm:"unique;not null" json:"email"`
	Password    string     `json:"-"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	LastActive  time.Time  `json:"last_active"`
	Roles       []Role     `gorm:"many2many:user_roles" json:"roles"`

	MemberProfile *MemberProfile `json:"member_profile,omitempty"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
}

// MemberProfile carries the sócio side of a user: membership number, join
// date, escalão tier and billing preference.
type MemberProfile struct {
	gorm.Model
	UserID            uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	MembershipNumber  string     `gorm:"unique;not null" json:"membership_number"`
	MemberSince       *time.Time `json:"member_since"`
	PaymentPreference string     `gorm:"default:'Monthly'" json:"payment_preference"`
	Escalao           int        `gorm:"default:0" json:"escalao"`
}

// AthleteProfile is the atleta side. The name may differ from the account
// holder (a parent's account can hold several children).
type AthleteProfile struct {
	gorm.Model
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
}

// UserFamilyLink is an admin-declared bidirectional family association
// between two accounts (siblings registered under different emails).
type UserFamilyLink struct {
	gorm.Model
	UserID       uint   `gorm:"index:idx_family_pair,unique" json:"user_id"`
	LinkedUserID uint   `gorm:"index:idx_family_pair,unique" json:"linked_user_id"`
	Relationship string `json:"relationship"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsMinorAt reports whether the user is under 18 at the given instant.
// Users without a recorded birth date are treated as adults.
func (u *User) IsMinorAt(at time.Time) bool {
	if u.DateOfBirth == nil {
		return false
	}
	eighteenth := u.DateOfBirth.AddDate(18, 0, 0)
	return at.Before(eighteenth)
}

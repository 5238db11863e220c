package entity

import "github.com/playden-lab/backend/pkg/enum"

type UserRole string

var (
	RoleUser  = enum.New(UserRole("USER"))
	RoleAdmin = enum.New(UserRole("ADMIN"))
)

// User is soft deleted when the account is deactivated, logging in again is
// not possible until the account is reactivated.
type User struct {
	Base
	Username     string `gorm:"uniqueIndex;size:32"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string
	DisplayName  string
	Bio          string
	AvatarURL    string
	Role         UserRole
}

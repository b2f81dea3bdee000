package userdb

import (
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// User is an admin-panel account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            string          `bun:"id,pk" json:"id"`
	Email         string          `bun:"email,notnull" json:"email"`
	DisplayName   string          `bun:"display_name,nullzero" json:"displayName,omitempty"`
	Role          authdomain.Role `bun:"role,notnull" json:"role"`
	repository.Timestamps
}

func (u *User) PrimaryKey() string          { return u.ID }
func (u *User) AssignPrimaryKey(id string) { u.ID = id }

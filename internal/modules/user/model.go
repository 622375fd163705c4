// README: User model. Accounts are keyed by a unique email.
package user

import (
	"time"

	"carpool/internal/types"
)

// Roles marks what a user may do; every account holds at least one.
type Roles struct {
	Rider  bool `json:"rider"`
	Driver bool `json:"driver"`
}

type User struct {
	ID           types.ID  `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Roles        Roles     `json:"roles"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

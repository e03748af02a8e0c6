package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
)

// Profile is the safe projection of a user returned by the API.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps a user row into its API projection.
func FromModel(user *models.User) Profile {
	return Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

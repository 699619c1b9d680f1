package users

import (
	"time"

	"github.com/HoaDang0803/ShineOn/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new account.
type CreateUserDTO struct {
	Email            *string
	Username         string
	PasswordHash     *string
	Provider         string
	FederatedSubject *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
	if u.Email != nil {
		dto.Email = *u.Email
	}
	return dto
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:            c.Email,
		Username:         c.Username,
		PasswordHash:     c.PasswordHash,
		Provider:         c.Provider,
		FederatedSubject: c.FederatedSubject,
	}
}

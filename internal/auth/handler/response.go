package handler

import (
	"github.com/zstrangeway/plydojo/internal/auth"

	"github.com/gin-gonic/gin"
)

// userView is the only user data ever returned to clients.
type userView struct {
	ID     string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Status auth.Status `json:"status"`
}

type envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	User    *userView `json:"user,omitempty"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{
		Success: false,
		Message: message,
	})
}

func newUserView(u *auth.User) *userView {
	return &userView{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Status: u.Status,
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetUsers(c *gin.Context) {
	users, err := h.userRepo.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.userRepo.GetUserById(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func (h *Handlers) DeleteUserByAdmin(c *gin.Context) {
	if err := h.userRepo.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

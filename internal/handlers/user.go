package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/middleware"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/repository"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/services"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *repository.UserRepository
	media *services.MediaService
}

func NewUserHandler(users *repository.UserRepository, media *services.MediaService) *UserHandler {
	return &UserHandler{
		users: users,
		media: media,
	}
}

// GetUser returns a single profile. The password is excluded by the
// model's JSON projection.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid user id."})
		return
	}

	user, findErr := h.users.FindByID(uint(id))
	if findErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user."})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetAuthors lists every registered user.
func (h *UserHandler) GetAuthors(c *gin.Context) {
	authors, err := h.users.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch authors."})
		return
	}
	c.JSON(http.StatusOK, authors)
}

// ChangeAvatar replaces the authenticated user's profile picture. The
// old file is removed best-effort before the new one is stored.
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	userID := middleware.UserID(c)

	avatar, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please choose an image."})
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}

	if user.Avatar != "" {
		h.media.DeleteQuietly(user.Avatar)
	}

	newFilename, err := h.media.Save(avatar, services.MaxAvatarSize)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Profile picture too big. Should be less than 500kb."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Avatar couldn't be changed."})
		return
	}

	updated, err := h.users.UpdateByID(userID, map[string]interface{}{"avatar": newFilename})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Avatar couldn't be changed."})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// EditUser updates name, email and password in one shot. Requires the
// current password; the email may only move to one not owned by someone
// else.
func (h *UserHandler) EditUser(c *gin.Context) {
	userID := middleware.UserID(c)

	var req struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		CurrentPassword    string `json:"currentPassword"`
		NewPassword        string `json:"newPassword"`
		NewConfirmPassword string `json:"newConfirmPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	if req.Name == "" || req.Email == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user."})
		return
	}
	if user == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "User not found."})
		return
	}

	newEmail := strings.ToLower(req.Email)

	emailOwner, err := h.users.FindByEmail(newEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user."})
		return
	}
	if emailOwner != nil && emailOwner.ID != userID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Email already exists."})
		return
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid current password."})
		return
	}

	if req.NewPassword != req.NewConfirmPassword {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "New passwords do not match."})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user."})
		return
	}

	updated, err := h.users.UpdateByID(userID, map[string]interface{}{
		"name":     req.Name,
		"email":    newEmail,
		"password": hash,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user."})
		return
	}

	c.JSON(http.StatusOK, updated)
}

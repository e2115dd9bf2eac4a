package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/models"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/repository"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/internal/services"
	"github.com/ANURAG-NITJSR-2K20-CSE/mern-blog-app/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users        *repository.UserRepository
	tokenService *services.TokenService
}

func NewAuthHandler(users *repository.UserRepository, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokenService: tokenService,
	}
}

// Register creates a new user. The response acknowledges the email only;
// the password hash never leaves the server.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	newEmail := strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(newEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User registration failed."})
		return
	}
	if existing != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Email already exists."})
		return
	}

	if len(strings.TrimSpace(req.Password)) < 6 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password should be at least 6 characters."})
		return
	}

	if req.Password != req.Password2 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Passwords do not match."})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User registration failed."})
		return
	}

	newUser := models.User{
		Name:     req.Name,
		Email:    newEmail,
		Password: hashedPassword,
	}

	if err := h.users.Create(&newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User registration failed."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("new user %s registered", newUser.Email),
	})
}

// Login checks credentials and issues a one-day bearer token. Unknown
// email and wrong password produce the same message on purpose.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Fill in all fields."})
		return
	}

	newEmail := strings.ToLower(req.Email)

	user, err := h.users.FindByEmail(newEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please check your credentials."})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid credentials."})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid credentials."})
		return
	}

	token, err := h.tokenService.Issue(user.ID, user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please check your credentials."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"token": token,
		"name":  user.Name,
	})
}

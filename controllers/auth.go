package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bst-coder/irrigation-last/httperr"
	"github.com/bst-coder/irrigation-last/middlewares"
	"github.com/bst-coder/irrigation-last/models"
	"github.com/bst-coder/irrigation-last/services"
)

type AuthController struct {
	db     *gorm.DB
	tokens *services.TokenService
}

func NewAuthController(db *gorm.DB, tokens *services.TokenService) *AuthController {
	return &AuthController{db: db, tokens: tokens}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user and returns a token pair.
func (ctl *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		httperr.Write(c, httperr.InvalidInput("Name, email and password required"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	var existing models.User
	if err := ctl.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		httperr.Write(c, httperr.Conflict("A user with this email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := ctl.db.Create(&user).Error; err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}

	access, refresh, err := ctl.tokens.IssuePair(&user)
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}
	ctl.db.Model(&user).Update("refresh_token", refresh)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Login authenticates by email and password and returns a token pair.
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		httperr.Write(c, httperr.InvalidInput("Email and password required"))
		return
	}

	var user models.User
	if err := ctl.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		httperr.Write(c, httperr.Unauthorized("Invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Write(c, httperr.Unauthorized("Invalid credentials"))
		return
	}

	access, refresh, err := ctl.tokens.IssuePair(&user)
	if err != nil {
		httperr.Write(c, httperr.Internal(err))
		return
	}
	ctl.db.Model(&user).Updates(map[string]interface{}{
		"refresh_token": refresh,
		"last_login":    time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Profile returns the authenticated user.
func (ctl *AuthController) Profile(c *gin.Context) {
	userID, _, ok := middlewares.IdentityFrom(c)
	if !ok {
		httperr.Write(c, httperr.Unauthorized("Unauthorized"))
		return
	}

	var user models.User
	if err := ctl.db.First(&user, userID).Error; err != nil {
		httperr.Write(c, httperr.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

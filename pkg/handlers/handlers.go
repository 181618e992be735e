package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikhilbhatia/shift-management-api/pkg/auth"
	"github.com/nikhilbhatia/shift-management-api/pkg/models"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// roleLocks serializes schedule generation per role so two overlapping
	// runs cannot both pass the conflict check before either commits.
	roleLocks sync.Map
}

// lockRole acquires the per-role generation lock and returns its release.
func (h *Handler) lockRole(roleID uuid.UUID) func() {
	v, _ := h.roleLocks.LoadOrStore(roleID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// AuthMiddleware verifies the JWT token and stores the claims on the context
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("userType", claims.UserType)
		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// RequireUserType rejects requests whose token carries a different user type
func (h *Handler) RequireUserType(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userType") != userType {
			c.JSON(http.StatusForbidden, gin.H{"error": userType + " access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentManager resolves the authenticated manager record
func (h *Handler) currentManager(c *gin.Context) (*models.Manager, bool) {
	id, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return nil, false
	}

	var manager models.Manager
	if err := h.DB.First(&manager, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager account not found"})
		return nil, false
	}
	return &manager, true
}

// currentEmployeeID returns the authenticated employee's id
func currentEmployeeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return uuid.Nil, false
	}
	return id, true
}

// Login authenticates an admin, manager or employee and issues a token
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		id           uuid.UUID
		name         string
		passwordHash string
		err          error
	)

	switch req.UserType {
	case auth.UserTypeAdmin:
		var user models.Admin
		err = h.DB.Where("username = ?", req.Username).First(&user).Error
		id, name, passwordHash = user.ID, user.Name, user.PasswordHash
	case auth.UserTypeManager:
		var user models.Manager
		err = h.DB.Where("username = ?", req.Username).First(&user).Error
		id, name, passwordHash = user.ID, user.Name, user.PasswordHash
	case auth.UserTypeEmployee:
		var user models.Employee
		err = h.DB.Where("username = ?", req.Username).First(&user).Error
		id, name, passwordHash = user.ID, user.Name, user.PasswordHash
	}

	if err != nil || !auth.CheckPasswordHash(req.Password, passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := auth.CreateToken(req.Username, req.UserType, id.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_type":    req.UserType,
		"user_id":      id.String(),
		"name":         name,
	})
}

// InitAdmin seeds the bootstrap admin account if none exists
func (h *Handler) InitAdmin(c *gin.Context) {
	var count int64
	h.DB.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Admin already exists"})
		return
	}

	if err := auth.EnsureAdminExists(h.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin created"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikhilbhatia/shift-management-api/pkg/auth"
	"github.com/nikhilbhatia/shift-management-api/pkg/models"
)

// ListDepartments returns all departments
func (h *Handler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch departments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// CreateDepartment creates a new department
func (h *Handler) CreateDepartment(c *gin.Context) {
	var req models.DepartmentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department := models.Department{
		Name:     req.Name,
		Location: req.Location,
	}
	if err := h.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create department"})
		return
	}
	c.JSON(http.StatusOK, department)
}

// UpdateDepartment updates name/location of a department
func (h *Handler) UpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	var req models.DepartmentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Location != nil {
		department.Location = *req.Location
	}

	if err := h.DB.Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update department"})
		return
	}
	c.JSON(http.StatusOK, department)
}

// DeleteDepartment removes a department
func (h *Handler) DeleteDepartment(c *gin.Context) {
	id := c.Param("id")
	result := h.DB.Delete(&models.Department{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete department"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted"})
}

// ListManagers returns all managers with their department names
func (h *Handler) ListManagers(c *gin.Context) {
	var managers []models.Manager
	if err := h.DB.Preload("Department").Find(&managers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch managers"})
		return
	}

	out := make([]gin.H, 0, len(managers))
	for _, m := range managers {
		departmentName := ""
		if m.Department != nil {
			departmentName = m.Department.Name
		}
		out = append(out, gin.H{
			"id":              m.ID,
			"name":            m.Name,
			"username":        m.Username,
			"department_id":   m.DepartmentID,
			"department_name": departmentName,
		})
	}
	c.JSON(http.StatusOK, gin.H{"managers": out})
}

// CreateManager creates a manager account for a department
func (h *Handler) CreateManager(c *gin.Context) {
	var req models.ManagerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", req.DepartmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	manager := models.Manager{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		DepartmentID: req.DepartmentID,
	}
	if err := h.DB.Create(&manager).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": manager.ID, "name": manager.Name})
}

// UpdateManager updates a manager account
func (h *Handler) UpdateManager(c *gin.Context) {
	id := c.Param("id")
	var req models.ManagerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var manager models.Manager
	if err := h.DB.First(&manager, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
		return
	}

	if req.Name != nil {
		manager.Name = *req.Name
	}
	if req.Username != nil {
		manager.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		manager.PasswordHash = hash
	}
	if req.DepartmentID != nil && *req.DepartmentID != uuid.Nil {
		var department models.Department
		if err := h.DB.First(&department, "id = ?", *req.DepartmentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		manager.DepartmentID = *req.DepartmentID
	}

	if err := h.DB.Save(&manager).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update manager"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": manager.ID, "name": manager.Name})
}

// DeleteManager removes a manager account
func (h *Handler) DeleteManager(c *gin.Context) {
	id := c.Param("id")
	result := h.DB.Delete(&models.Manager{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete manager"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manager deleted"})
}

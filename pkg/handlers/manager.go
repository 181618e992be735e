package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nikhilbhatia/shift-management-api/pkg/auth"
	"github.com/nikhilbhatia/shift-management-api/pkg/models"
)

// roleInDepartment loads a role and verifies it belongs to the manager's
// department.
func (h *Handler) roleInDepartment(roleID uuid.UUID, departmentID uuid.UUID) (*models.Role, bool) {
	var role models.Role
	if err := h.DB.First(&role, "id = ?", roleID).Error; err != nil {
		return nil, false
	}
	return &role, role.DepartmentID == departmentID
}

// ListRoles returns the roles of the manager's department
func (h *Handler) ListRoles(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var roles []models.Role
	if err := h.DB.Where("department_id = ?", manager.DepartmentID).Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// CreateRole creates a role in the manager's department
func (h *Handler) CreateRole(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.RoleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.WorkDays.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DepartmentID != manager.DepartmentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only create roles in your department"})
		return
	}

	role := models.Role{
		DepartmentID:         req.DepartmentID,
		Name:                 req.Name,
		WorkDays:             req.WorkDays,
		BreakMinutes:         req.BreakMinutes,
		DailyWorkHours:       req.DailyWorkHours,
		WeeklyHoursLimit:     req.WeeklyHoursLimit,
		DailyMaxHours:        req.DailyMaxHours,
		MonthlyOvertimeLimit: req.MonthlyOvertimeLimit,
		EmploymentType:       req.EmploymentType,
	}
	if err := h.DB.Create(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": role.ID, "name": role.Name})
}

// UpdateRole updates a role in the manager's department
func (h *Handler) UpdateRole(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role id"})
		return
	}

	var req models.RoleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, inDept := h.roleInDepartment(roleID, manager.DepartmentID)
	if role == nil || !inDept {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found in your department"})
		return
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.WorkDays != nil {
		if err := req.WorkDays.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		role.WorkDays = *req.WorkDays
	}
	if req.BreakMinutes != nil {
		role.BreakMinutes = *req.BreakMinutes
	}
	if req.DailyWorkHours != nil {
		role.DailyWorkHours = req.DailyWorkHours
	}
	if req.WeeklyHoursLimit != nil {
		role.WeeklyHoursLimit = req.WeeklyHoursLimit
	}
	if req.DailyMaxHours != nil {
		role.DailyMaxHours = req.DailyMaxHours
	}
	if req.MonthlyOvertimeLimit != nil {
		role.MonthlyOvertimeLimit = req.MonthlyOvertimeLimit
	}
	if req.EmploymentType != nil {
		role.EmploymentType = *req.EmploymentType
	}

	if err := h.DB.Save(role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": role.ID, "name": role.Name})
}

// DeleteRole removes a role from the manager's department
func (h *Handler) DeleteRole(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role id"})
		return
	}

	role, inDept := h.roleInDepartment(roleID, manager.DepartmentID)
	if role == nil || !inDept {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	if err := h.DB.Delete(role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}

// ListShifts returns shift templates of the manager's department, optionally
// filtered by role
func (h *Handler) ListShifts(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Role").
		Joins("JOIN roles ON roles.id = shifts.role_id").
		Where("roles.department_id = ?", manager.DepartmentID)
	if roleID := c.Query("role_id"); roleID != "" {
		query = query.Where("shifts.role_id = ?", roleID)
	}

	var shifts []models.Shift
	if err := query.Order("shifts.created_at").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shifts"})
		return
	}

	out := make([]gin.H, 0, len(shifts))
	for _, s := range shifts {
		roleName := ""
		if s.Role != nil {
			roleName = s.Role.Name
		}
		out = append(out, gin.H{
			"id":              s.ID,
			"role_id":         s.RoleID,
			"role_name":       roleName,
			"name":            s.Name,
			"day_of_week":     s.DayOfWeek,
			"start_time":      s.StartTime,
			"end_time":        s.EndTime,
			"priority":        s.Priority,
			"skills_required": s.SkillsRequired,
		})
	}
	c.JSON(http.StatusOK, gin.H{"shifts": out})
}

// CreateShift creates a shift template under a role of the manager's
// department
func (h *Handler) CreateShift(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.ShiftCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, inDept := h.roleInDepartment(req.RoleID, manager.DepartmentID)
	if role == nil || !inDept {
		c.JSON(http.StatusForbidden, gin.H{"error": "Role not in your department"})
		return
	}

	shift := models.Shift{
		RoleID:         req.RoleID,
		Name:           req.Name,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Priority:       req.Priority,
		SkillsRequired: req.SkillsRequired,
	}
	if err := h.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": shift.ID, "name": shift.Name})
}

// UpdateShift updates a shift template
func (h *Handler) UpdateShift(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.ShiftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shift models.Shift
	err := h.DB.Joins("JOIN roles ON roles.id = shifts.role_id").
		Where("shifts.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&shift).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.DayOfWeek != nil {
		shift.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.Priority != nil {
		shift.Priority = *req.Priority
	}
	if req.SkillsRequired != nil {
		shift.SkillsRequired = *req.SkillsRequired
	}

	if err := h.DB.Save(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": shift.ID, "name": shift.Name})
}

// DeleteShift removes a shift template
func (h *Handler) DeleteShift(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var shift models.Shift
	err := h.DB.Joins("JOIN roles ON roles.id = shifts.role_id").
		Where("shifts.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&shift).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	if err := h.DB.Delete(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// ListEmployees returns employees of the manager's department
func (h *Handler) ListEmployees(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var employees []models.Employee
	err := h.DB.Preload("Role").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.department_id = ?", manager.DepartmentID).
		Order("employees.created_at").
		Find(&employees).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch employees"})
		return
	}

	out := make([]gin.H, 0, len(employees))
	for _, e := range employees {
		roleName := ""
		if e.Role != nil {
			roleName = e.Role.Name
		}
		out = append(out, gin.H{
			"id":                          e.ID,
			"name":                        e.Name,
			"username":                    e.Username,
			"role_id":                     e.RoleID,
			"role_name":                   roleName,
			"is_active":                   e.IsActive,
			"monthly_overtime_used":       e.MonthlyOvertimeUsed,
			"yearly_paid_leave_allowance": e.YearlyPaidLeaveAllowance,
			"yearly_paid_leave_used":      e.YearlyPaidLeaveUsed,
			"skills":                      e.Skills,
			"availability":                e.Availability,
		})
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

// CreateEmployee creates an employee under a role of the manager's
// department
func (h *Handler) CreateEmployee(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.EmployeeCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Availability.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, inDept := h.roleInDepartment(req.RoleID, manager.DepartmentID)
	if role == nil || !inDept {
		c.JSON(http.StatusForbidden, gin.H{"error": "Role not in your department"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	employee := models.Employee{
		RoleID:                   req.RoleID,
		Name:                     req.Name,
		Username:                 req.Username,
		PasswordHash:             hash,
		YearlyPaidLeaveAllowance: req.YearlyPaidLeaveAllowance,
		Availability:             req.Availability,
		Skills:                   req.Skills,
		IsActive:                 true,
	}
	if err := h.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": employee.ID, "name": employee.Name})
}

// UpdateEmployee updates an employee of the manager's department
func (h *Handler) UpdateEmployee(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.EmployeeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.Employee
	err := h.DB.Joins("JOIN roles ON roles.id = employees.role_id").
		Where("employees.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	if req.RoleID != nil {
		role, inDept := h.roleInDepartment(*req.RoleID, manager.DepartmentID)
		if role == nil || !inDept {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not in your department"})
			return
		}
		employee.RoleID = *req.RoleID
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Username != nil {
		employee.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		employee.PasswordHash = hash
	}
	if req.YearlyPaidLeaveAllowance != nil {
		employee.YearlyPaidLeaveAllowance = req.YearlyPaidLeaveAllowance
	}
	if req.Availability != nil {
		if err := req.Availability.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		employee.Availability = *req.Availability
	}
	if req.Skills != nil {
		employee.Skills = *req.Skills
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": employee.ID, "name": employee.Name})
}

// DeleteEmployee soft-deletes an employee by deactivating the account
func (h *Handler) DeleteEmployee(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var employee models.Employee
	err := h.DB.Joins("JOIN roles ON roles.id = employees.role_id").
		Where("employees.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	employee.IsActive = false
	if err := h.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not deactivate employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deactivated"})
}

// ListSchedules returns schedules of the manager's department with optional
// employee/date filters
func (h *Handler) ListSchedules(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Employee").Preload("Shift").
		Joins("JOIN employees ON employees.id = schedules.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.department_id = ?", manager.DepartmentID)

	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("schedules.employee_id = ?", employeeID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("schedules.date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("schedules.date <= ?", endDate)
	}

	var schedules []models.Schedule
	if err := query.Order("schedules.date").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedules"})
		return
	}

	out := make([]gin.H, 0, len(schedules))
	for _, s := range schedules {
		employeeName := ""
		if s.Employee != nil {
			employeeName = s.Employee.Name
		}
		shiftName := ""
		if s.Shift != nil {
			shiftName = s.Shift.Name
		}
		out = append(out, gin.H{
			"id":             s.ID,
			"employee_id":    s.EmployeeID,
			"employee_name":  employeeName,
			"shift_id":       s.ShiftID,
			"shift_name":     shiftName,
			"date":           s.Date,
			"start_time":     s.StartTime,
			"end_time":       s.EndTime,
			"overtime_hours": s.OvertimeHours,
			"is_custom":      s.IsCustom,
		})
	}
	c.JSON(http.StatusOK, gin.H{"schedules": out})
}

// CreateSchedule creates a manual schedule entry, honoring the one-per-day
// rule
func (h *Handler) CreateSchedule(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.ScheduleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.Employee
	err := h.DB.Joins("JOIN roles ON roles.id = employees.role_id").
		Where("employees.id = ? AND roles.department_id = ?", req.EmployeeID, manager.DepartmentID).
		First(&employee).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var count int64
	h.DB.Model(&models.Schedule{}).
		Where("employee_id = ? AND date = ?", req.EmployeeID, req.Date).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schedule already exists for this date"})
		return
	}

	schedule := models.Schedule{
		EmployeeID:    req.EmployeeID,
		ShiftID:       req.ShiftID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		OvertimeHours: req.OvertimeHours,
		IsCustom:      req.IsCustom,
	}
	if err := h.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": schedule.ID, "date": schedule.Date})
}

// DeleteSchedule removes a schedule entry from the manager's department
func (h *Handler) DeleteSchedule(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var schedule models.Schedule
	err := h.DB.Joins("JOIN employees ON employees.id = schedules.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("schedules.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&schedule).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if err := h.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

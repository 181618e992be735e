package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikhilbhatia/shift-management-api/pkg/models"
	"github.com/nikhilbhatia/shift-management-api/pkg/scheduler"
)

// ListMySchedules returns the authenticated employee's schedules
func (h *Handler) ListMySchedules(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Shift").Where("employee_id = ?", employeeID)
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var schedules []models.Schedule
	if err := query.Order("date").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedules"})
		return
	}

	out := make([]gin.H, 0, len(schedules))
	for _, s := range schedules {
		shiftName := ""
		if s.Shift != nil {
			shiftName = s.Shift.Name
		}
		out = append(out, gin.H{
			"id":             s.ID,
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

// ClockIn opens today's attendance against the employee's schedule
func (h *Handler) ClockIn(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var req models.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EmployeeID != employeeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only clock in for yourself"})
		return
	}

	var schedule models.Schedule
	err := h.DB.Where("employee_id = ? AND date = ?", employeeID, req.Date).First(&schedule).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule found for this date"})
		return
	}

	now := time.Now().Format(models.TimeLayout)

	var attendance models.Attendance
	err = h.DB.Where("employee_id = ? AND date = ?", employeeID, req.Date).First(&attendance).Error
	if err == nil {
		if attendance.ClockIn != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already clocked in"})
			return
		}
		attendance.ClockIn = now
		if err := h.DB.Save(&attendance).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record clock-in"})
			return
		}
	} else {
		attendance = models.Attendance{
			EmployeeID:     employeeID,
			Date:           req.Date,
			ScheduledStart: schedule.StartTime,
			ScheduledEnd:   schedule.EndTime,
			ClockIn:        now,
			Status:         models.AttendancePresent,
		}
		if err := h.DB.Create(&attendance).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record clock-in"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Clocked in successfully", "time": now})
}

// ClockOut closes today's attendance and computes worked and overtime
// hours. The same midnight-wrap convention as shift durations applies to
// both the worked window and the scheduled window.
func (h *Handler) ClockOut(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var req models.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EmployeeID != employeeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only clock out for yourself"})
		return
	}

	var attendance models.Attendance
	err := h.DB.Where("employee_id = ? AND date = ?", employeeID, req.Date).First(&attendance).Error
	if err != nil || attendance.ClockIn == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Must clock in first"})
		return
	}
	if attendance.ClockOut != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already clocked out"})
		return
	}

	now := time.Now().Format(models.TimeLayout)
	attendance.ClockOut = now
	attendance.WorkedHours = scheduler.ShiftHours(attendance.ClockIn, now)

	if attendance.ScheduledStart != "" && attendance.ScheduledEnd != "" {
		scheduledHours := scheduler.ShiftHours(attendance.ScheduledStart, attendance.ScheduledEnd)
		if attendance.WorkedHours > scheduledHours {
			attendance.OvertimeHours = attendance.WorkedHours - scheduledHours
		}
	}

	if err := h.DB.Save(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record clock-out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Clocked out successfully",
		"time":           now,
		"worked_hours":   attendance.WorkedHours,
		"overtime_hours": attendance.OvertimeHours,
	})
}

// ListMyAttendance returns the employee's attendance history
func (h *Handler) ListMyAttendance(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	query := h.DB.Where("employee_id = ?", employeeID)
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var attendances []models.Attendance
	if err := query.Order("date").Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": attendances})
}

// ListMyOvertime returns the employee's overtime requests
func (h *Handler) ListMyOvertime(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var overtimes []models.Overtime
	err := h.DB.Where("employee_id = ?", employeeID).Order("created_at desc").Find(&overtimes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch overtime requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"overtime": overtimes})
}

// RequestOvertime submits a pending overtime request
func (h *Handler) RequestOvertime(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var req models.OvertimeCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EmployeeID != employeeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only request overtime for yourself"})
		return
	}

	overtime := models.Overtime{
		EmployeeID:       req.EmployeeID,
		Date:             req.Date,
		ActualHours:      req.ActualHours,
		OvertimeType:     req.OvertimeType,
		CompensationMode: req.CompensationMode,
		ApprovalStatus:   models.StatusPending,
	}
	if err := h.DB.Create(&overtime).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Overtime already requested for this date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": overtime.ID, "message": "Overtime request submitted"})
}

// ListMyLeaves returns the employee's leave requests
func (h *Handler) ListMyLeaves(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var leaves []models.EmployeeLeave
	err := h.DB.Where("employee_id = ?", employeeID).Order("created_at desc").Find(&leaves).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch leave requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

// RequestLeave submits a pending leave request, one per date
func (h *Handler) RequestLeave(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var req models.LeaveCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EmployeeID != employeeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only request leave for yourself"})
		return
	}

	var count int64
	h.DB.Model(&models.EmployeeLeave{}).
		Where("employee_id = ? AND date = ?", employeeID, req.Date).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Leave already requested for this date"})
		return
	}

	leave := models.EmployeeLeave{
		EmployeeID:     req.EmployeeID,
		LeaveType:      req.LeaveType,
		Date:           req.Date,
		Duration:       req.Duration,
		Reason:         req.Reason,
		ApprovalStatus: models.StatusPending,
	}
	if err := h.DB.Create(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create leave request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": leave.ID, "message": "Leave request submitted"})
}

// MyProfile returns the employee's own record with role and department names
func (h *Handler) MyProfile(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}

	var employee models.Employee
	err := h.DB.Preload("Role").Preload("Role.Department").First(&employee, "id = ?", employeeID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	roleName := ""
	departmentName := ""
	if employee.Role != nil {
		roleName = employee.Role.Name
		if employee.Role.Department != nil {
			departmentName = employee.Role.Department.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                          employee.ID,
		"name":                        employee.Name,
		"username":                    employee.Username,
		"role_name":                   roleName,
		"department_name":             departmentName,
		"monthly_overtime_used":       employee.MonthlyOvertimeUsed,
		"yearly_paid_leave_allowance": employee.YearlyPaidLeaveAllowance,
		"yearly_paid_leave_used":      employee.YearlyPaidLeaveUsed,
		"skills":                      employee.Skills,
		"availability":                employee.Availability,
	})
}

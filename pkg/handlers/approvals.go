package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikhilbhatia/shift-management-api/pkg/models"
)

// ListHolidays returns all holidays
func (h *Handler) ListHolidays(c *gin.Context) {
	var holidays []models.Holiday
	if err := h.DB.Order("date").Find(&holidays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch holidays"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

// CreateHoliday registers a holiday, globally or for one location
func (h *Handler) CreateHoliday(c *gin.Context) {
	var req models.HolidayCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holiday := models.Holiday{
		Name:        req.Name,
		Date:        req.Date,
		HolidayType: req.HolidayType,
		Location:    req.Location,
		IsPaid:      req.IsPaid == nil || *req.IsPaid,
	}
	if err := h.DB.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Holiday already exists for this date and location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": holiday.ID, "date": holiday.Date})
}

// ListAttendance returns attendance records for the manager's department
func (h *Handler) ListAttendance(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Employee").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.department_id = ?", manager.DepartmentID)

	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("attendances.employee_id = ?", employeeID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("attendances.date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("attendances.date <= ?", endDate)
	}

	var attendances []models.Attendance
	if err := query.Order("attendances.date").Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch attendance"})
		return
	}

	out := make([]gin.H, 0, len(attendances))
	for _, a := range attendances {
		employeeName := ""
		if a.Employee != nil {
			employeeName = a.Employee.Name
		}
		out = append(out, gin.H{
			"id":              a.ID,
			"employee_id":     a.EmployeeID,
			"employee_name":   employeeName,
			"date":            a.Date,
			"scheduled_start": a.ScheduledStart,
			"scheduled_end":   a.ScheduledEnd,
			"clock_in":        a.ClockIn,
			"clock_out":       a.ClockOut,
			"worked_hours":    a.WorkedHours,
			"overtime_hours":  a.OvertimeHours,
			"status":          a.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"attendance": out})
}

// ListOvertimeRequests returns overtime requests for the manager's
// department
func (h *Handler) ListOvertimeRequests(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var overtimes []models.Overtime
	err := h.DB.Preload("Employee").
		Joins("JOIN employees ON employees.id = overtimes.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.department_id = ?", manager.DepartmentID).
		Order("overtimes.created_at desc").
		Find(&overtimes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch overtime requests"})
		return
	}

	out := make([]gin.H, 0, len(overtimes))
	for _, o := range overtimes {
		employeeName := ""
		if o.Employee != nil {
			employeeName = o.Employee.Name
		}
		out = append(out, gin.H{
			"id":                o.ID,
			"employee_id":       o.EmployeeID,
			"employee_name":     employeeName,
			"date":              o.Date,
			"actual_hours":      o.ActualHours,
			"approved_hours":    o.ApprovedHours,
			"overtime_type":     o.OvertimeType,
			"compensation_mode": o.CompensationMode,
			"approval_status":   o.ApprovalStatus,
			"created_at":        o.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"overtime": out})
}

// ApproveOvertime processes an overtime request. Approving a COMP_OFF
// request creates a pre-approved compensatory leave a week after the
// overtime date; approving EXTRA_PAY adds the hours to the employee's
// monthly usage.
func (h *Handler) ApproveOvertime(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.OvertimeApproval
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var overtime models.Overtime
	err := h.DB.Joins("JOIN employees ON employees.id = overtimes.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("overtimes.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&overtime).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Overtime request not found"})
		return
	}

	overtime.ApprovalStatus = req.ApprovalStatus
	if req.ApprovedHours != nil {
		overtime.ApprovedHours = req.ApprovedHours
	} else {
		hours := overtime.ActualHours
		overtime.ApprovedHours = &hours
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&overtime).Error; err != nil {
			return err
		}

		if req.ApprovalStatus == models.StatusApproved && overtime.CompensationMode == models.CompensationCompOff {
			compOffDate, err := time.Parse(models.DateLayout, overtime.Date)
			if err != nil {
				return err
			}
			compOff := models.EmployeeLeave{
				EmployeeID:       overtime.EmployeeID,
				LeaveType:        models.LeaveCompOff,
				Date:             compOffDate.AddDate(0, 0, 7).Format(models.DateLayout),
				Duration:         models.DurationFullDay,
				ApprovalStatus:   models.StatusApproved,
				SourceOvertimeID: &overtime.ID,
				Reason:           "Compensatory leave for overtime on " + overtime.Date,
			}
			if err := tx.Create(&compOff).Error; err != nil {
				return err
			}
		}

		if req.ApprovalStatus == models.StatusApproved && overtime.CompensationMode == models.CompensationExtraPay {
			err := tx.Model(&models.Employee{}).
				Where("id = ?", overtime.EmployeeID).
				Update("monthly_overtime_used", gorm.Expr("monthly_overtime_used + ?", *overtime.ApprovedHours)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process overtime request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Overtime request processed"})
}

// ListLeaveRequests returns leave requests for the manager's department
func (h *Handler) ListLeaveRequests(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var leaves []models.EmployeeLeave
	err := h.DB.Preload("Employee").
		Joins("JOIN employees ON employees.id = employee_leaves.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("roles.department_id = ?", manager.DepartmentID).
		Order("employee_leaves.created_at desc").
		Find(&leaves).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch leave requests"})
		return
	}

	out := make([]gin.H, 0, len(leaves))
	for _, l := range leaves {
		employeeName := ""
		if l.Employee != nil {
			employeeName = l.Employee.Name
		}
		out = append(out, gin.H{
			"id":              l.ID,
			"employee_id":     l.EmployeeID,
			"employee_name":   employeeName,
			"leave_type":      l.LeaveType,
			"date":            l.Date,
			"duration":        l.Duration,
			"reason":          l.Reason,
			"approval_status": l.ApprovalStatus,
			"created_at":      l.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaves": out})
}

// ApproveLeave processes a leave request. Approving PAID leave charges the
// employee's yearly allowance, a half day counting 0.5.
func (h *Handler) ApproveLeave(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.LeaveApproval
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var leave models.EmployeeLeave
	err := h.DB.Joins("JOIN employees ON employees.id = employee_leaves.employee_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Where("employee_leaves.id = ? AND roles.department_id = ?", c.Param("id"), manager.DepartmentID).
		First(&leave).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		return
	}

	leave.ApprovalStatus = req.ApprovalStatus

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&leave).Error; err != nil {
			return err
		}
		if req.ApprovalStatus == models.StatusApproved && leave.LeaveType == models.LeavePaid {
			increment := 1.0
			if leave.Duration == models.DurationHalfDay {
				increment = 0.5
			}
			return tx.Model(&models.Employee{}).
				Where("id = ?", leave.EmployeeID).
				Update("yearly_paid_leave_used", gorm.Expr("yearly_paid_leave_used + ?", increment)).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process leave request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Leave request processed"})
}

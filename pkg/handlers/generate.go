package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikhilbhatia/shift-management-api/pkg/models"
	"github.com/nikhilbhatia/shift-management-api/pkg/scheduler"
)

// loadRoleSnapshot assembles the read-only input for one generation run.
// Shifts and employees keep their creation order: the engine uses it as the
// priority tie-break and the candidate selection order. Existing schedules
// are loaded for the full Monday-to-Sunday weeks touching the range so
// weekly-hour accumulation sees rows just outside it.
func loadRoleSnapshot(db *gorm.DB, role *models.Role, start, end time.Time) (*scheduler.Snapshot, error) {
	snap := &scheduler.Snapshot{
		Role: &scheduler.Role{
			ID:               role.ID,
			Name:             role.Name,
			WorkDays:         role.WorkDays,
			WeeklyHoursLimit: role.WeeklyHoursLimit,
		},
		ApprovedLeave: make(map[string]bool),
	}

	var shifts []models.Shift
	if err := db.Where("role_id = ?", role.ID).Order("created_at, id").Find(&shifts).Error; err != nil {
		return nil, err
	}
	for _, s := range shifts {
		snap.Shifts = append(snap.Shifts, scheduler.Shift{
			ID:             s.ID,
			Name:           s.Name,
			DayOfWeek:      s.DayOfWeek,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			Priority:       s.Priority,
			SkillsRequired: s.SkillsRequired,
		})
	}

	var employees []models.Employee
	err := db.Where("role_id = ? AND is_active = ?", role.ID, true).
		Order("created_at, id").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	employeeIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		availability := make(map[int]bool, len(e.Availability))
		for key, day := range e.Availability {
			n, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			availability[n] = day.Available == nil || *day.Available
		}
		snap.Employees = append(snap.Employees, scheduler.Employee{
			ID:           e.ID,
			Name:         e.Name,
			IsActive:     e.IsActive,
			Skills:       e.Skills,
			Availability: availability,
		})
		employeeIDs = append(employeeIDs, e.ID.String())
	}

	startStr := start.Format(models.DateLayout)
	endStr := end.Format(models.DateLayout)

	var holidays []models.Holiday
	if err := db.Where("date BETWEEN ? AND ?", startStr, endStr).Find(&holidays).Error; err != nil {
		return nil, err
	}
	for _, h := range holidays {
		snap.Holidays = append(snap.Holidays, scheduler.Holiday{
			Date:     h.Date,
			Location: h.Location,
		})
	}

	if len(employeeIDs) > 0 {
		var leaves []models.EmployeeLeave
		err = db.Where("employee_id IN ? AND approval_status = ? AND date BETWEEN ? AND ?",
			employeeIDs, models.StatusApproved, startStr, endStr).Find(&leaves).Error
		if err != nil {
			return nil, err
		}
		for _, l := range leaves {
			snap.ApprovedLeave[scheduler.LeaveKey(l.EmployeeID, l.Date)] = true
		}

		weekStart := start.AddDate(0, 0, -(scheduler.ISOWeekday(start) - 1))
		weekEnd := end.AddDate(0, 0, 7-scheduler.ISOWeekday(end))

		var existing []models.Schedule
		err = db.Where("employee_id IN ? AND date BETWEEN ? AND ?",
			employeeIDs, weekStart.Format(models.DateLayout), weekEnd.Format(models.DateLayout)).
			Find(&existing).Error
		if err != nil {
			return nil, err
		}
		for _, s := range existing {
			snap.Existing = append(snap.Existing, scheduler.ScheduleEntry{
				EmployeeID: s.EmployeeID,
				Date:       s.Date,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
			})
		}
	}

	return snap, nil
}

// GenerateSchedules runs the assignment engine for a role over a date range
// and commits every created schedule in a single transaction.
func (h *Handler) GenerateSchedules(c *gin.Context) {
	manager, ok := h.currentManager(c)
	if !ok {
		return
	}

	var req models.ScheduleGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must not be after end_date"})
		return
	}

	var role models.Role
	if err := h.DB.First(&role, "id = ?", req.RoleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}
	if role.DepartmentID != manager.DepartmentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Role not in your department"})
		return
	}

	// Serialize runs per role: overlapping ranges would otherwise race past
	// the conflict check before either commits.
	release := h.lockRole(role.ID)
	defer release()

	snap, err := loadRoleSnapshot(h.DB, &role, start, end)
	if err != nil {
		h.Logger.Error("failed to load scheduling snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load scheduling data"})
		return
	}

	result, err := scheduler.Generate(*snap, start, end, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, scheduler.ErrNoActiveEmployees), errors.Is(err, scheduler.ErrNoShiftsDefined):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// All rows commit or none do; a partial run must never persist.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, created := range result.Schedules {
			shiftID := created.ShiftID
			schedule := models.Schedule{
				EmployeeID: created.EmployeeID,
				ShiftID:    &shiftID,
				Date:       created.Date,
				StartTime:  created.StartTime,
				EndTime:    created.EndTime,
				IsCustom:   false,
			}
			if err := tx.Create(&schedule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.Logger.Error("failed to persist generated schedules",
			zap.String("role_id", role.ID.String()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save generated schedules"})
		return
	}

	h.Logger.Info("schedule generation complete",
		zap.String("role", role.Name),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	c.JSON(http.StatusOK, result)
}

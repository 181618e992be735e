package models

import "github.com/google/uuid"

// Request payloads for the HTTP layer. Binding tags enforce the typed
// value-object rules at the data-entry boundary so the scheduler never has
// to re-validate its inputs.

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required,oneof=admin manager employee"`
}

type DepartmentCreate struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type DepartmentUpdate struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

type ManagerCreate struct {
	Name         string    `json:"name" binding:"required"`
	Username     string    `json:"username" binding:"required"`
	Password     string    `json:"password" binding:"required,min=8"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

type ManagerUpdate struct {
	Name         *string    `json:"name"`
	Username     *string    `json:"username"`
	Password     *string    `json:"password" binding:"omitempty,min=8"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type RoleCreate struct {
	DepartmentID         uuid.UUID `json:"department_id" binding:"required"`
	Name                 string    `json:"name" binding:"required"`
	WorkDays             WorkDays  `json:"work_days" binding:"required"`
	BreakMinutes         int       `json:"break_minutes" binding:"min=0"`
	DailyWorkHours       *float64  `json:"daily_work_hours"`
	WeeklyHoursLimit     *float64  `json:"weekly_hours_limit"`
	DailyMaxHours        *float64  `json:"daily_max_hours"`
	MonthlyOvertimeLimit *float64  `json:"monthly_overtime_limit"`
	EmploymentType       string    `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME"`
}

type RoleUpdate struct {
	Name                 *string   `json:"name"`
	WorkDays             *WorkDays `json:"work_days"`
	BreakMinutes         *int      `json:"break_minutes"`
	DailyWorkHours       *float64  `json:"daily_work_hours"`
	WeeklyHoursLimit     *float64  `json:"weekly_hours_limit"`
	DailyMaxHours        *float64  `json:"daily_max_hours"`
	MonthlyOvertimeLimit *float64  `json:"monthly_overtime_limit"`
	EmploymentType       *string   `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME"`
}

type ShiftCreate struct {
	RoleID         uuid.UUID `json:"role_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	DayOfWeek      int       `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime      string    `json:"start_time" binding:"required,datetime=15:04"`
	EndTime        string    `json:"end_time" binding:"required,datetime=15:04"`
	Priority       int       `json:"priority"`
	SkillsRequired SkillSet  `json:"skills_required"`
}

type ShiftUpdate struct {
	Name           *string   `json:"name"`
	DayOfWeek      *int      `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartTime      *string   `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime        *string   `json:"end_time" binding:"omitempty,datetime=15:04"`
	Priority       *int      `json:"priority"`
	SkillsRequired *SkillSet `json:"skills_required"`
}

type EmployeeCreate struct {
	RoleID                   uuid.UUID    `json:"role_id" binding:"required"`
	Name                     string       `json:"name" binding:"required"`
	Username                 string       `json:"username" binding:"required"`
	Password                 string       `json:"password" binding:"required,min=8"`
	YearlyPaidLeaveAllowance *int         `json:"yearly_paid_leave_allowance"`
	Availability             Availability `json:"availability"`
	Skills                   SkillSet     `json:"skills"`
}

type EmployeeUpdate struct {
	RoleID                   *uuid.UUID    `json:"role_id"`
	Name                     *string       `json:"name"`
	Username                 *string       `json:"username"`
	Password                 *string       `json:"password" binding:"omitempty,min=8"`
	YearlyPaidLeaveAllowance *int          `json:"yearly_paid_leave_allowance"`
	Availability             *Availability `json:"availability"`
	Skills                   *SkillSet     `json:"skills"`
	IsActive                 *bool         `json:"is_active"`
}

type ScheduleCreate struct {
	EmployeeID    uuid.UUID  `json:"employee_id" binding:"required"`
	ShiftID       *uuid.UUID `json:"shift_id"`
	Date          string     `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string     `json:"start_time" binding:"required,datetime=15:04"`
	EndTime       string     `json:"end_time" binding:"required,datetime=15:04"`
	OvertimeHours float64    `json:"overtime_hours"`
	IsCustom      bool       `json:"is_custom"`
}

type ScheduleGenerateRequest struct {
	RoleID    uuid.UUID `json:"role_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" binding:"required,datetime=2006-01-02"`
	Location  string    `json:"location"`
}

type HolidayCreate struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	HolidayType string `json:"holiday_type" binding:"omitempty,oneof=NATIONAL REGIONAL COMPANY"`
	Location    string `json:"location"`
	IsPaid      *bool  `json:"is_paid"`
}

type ClockRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Date       string    `json:"date" binding:"required,datetime=2006-01-02"`
}

type OvertimeCreate struct {
	EmployeeID       uuid.UUID `json:"employee_id" binding:"required"`
	Date             string    `json:"date" binding:"required,datetime=2006-01-02"`
	ActualHours      float64   `json:"actual_hours" binding:"required,gt=0"`
	OvertimeType     string    `json:"overtime_type" binding:"required,oneof=NORMAL NIGHT HOLIDAY"`
	CompensationMode string    `json:"compensation_mode" binding:"required,oneof=EXTRA_PAY COMP_OFF"`
}

type OvertimeApproval struct {
	ApprovedHours  *float64 `json:"approved_hours"`
	ApprovalStatus string   `json:"approval_status" binding:"required,oneof=APPROVED REJECTED"`
}

type LeaveCreate struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	LeaveType  string    `json:"leave_type" binding:"required,oneof=PAID UNPAID COMP_OFF"`
	Date       string    `json:"date" binding:"required,datetime=2006-01-02"`
	Duration   string    `json:"duration" binding:"required,oneof=FULL_DAY HALF_DAY"`
	Reason     string    `json:"reason"`
}

type LeaveApproval struct {
	ApprovalStatus string `json:"approval_status" binding:"required,oneof=APPROVED REJECTED"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enumerated status values used across requests and approvals
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	LeavePaid    = "PAID"
	LeaveUnpaid  = "UNPAID"
	LeaveCompOff = "COMP_OFF"

	DurationFullDay = "FULL_DAY"
	DurationHalfDay = "HALF_DAY"

	OvertimeNormal  = "NORMAL"
	OvertimeNight   = "NIGHT"
	OvertimeHoliday = "HOLIDAY"

	CompensationExtraPay = "EXTRA_PAY"
	CompensationCompOff  = "COMP_OFF"

	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
)

// DateLayout is the canonical format for date columns and payloads,
// TimeLayout for time-of-day ("HH:MM") columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Department groups roles under one location
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Manager administers one department's roles, shifts and employees
type Manager struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (m *Manager) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Role is a job category: its work-day set and hour limits bound what the
// scheduler may assign to the role's employees.
type Role struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DepartmentID         uuid.UUID `gorm:"type:uuid;not null" json:"department_id"`
	Name                 string    `gorm:"not null" json:"name"`
	WorkDays             WorkDays  `gorm:"serializer:json;not null" json:"work_days"`
	BreakMinutes         int       `gorm:"not null" json:"break_minutes"`
	DailyWorkHours       *float64  `json:"daily_work_hours,omitempty"`
	WeeklyHoursLimit     *float64  `json:"weekly_hours_limit,omitempty"`
	DailyMaxHours        *float64  `json:"daily_max_hours,omitempty"`
	MonthlyOvertimeLimit *float64  `json:"monthly_overtime_limit,omitempty"`
	EmploymentType       string    `json:"employment_type,omitempty"`
	CreatedAt            time.Time `json:"created_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Shift is a recurring weekday time window belonging to a role.
// DayOfWeek uses ISO numbering, 1=Monday through 7=Sunday. EndTime may be
// numerically before StartTime, which marks an overnight shift.
type Shift struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID         uuid.UUID `gorm:"type:uuid;not null" json:"role_id"`
	Name           string    `gorm:"not null" json:"name"`
	DayOfWeek      int       `gorm:"not null;check:day_of_week BETWEEN 1 AND 7" json:"day_of_week"`
	StartTime      string    `gorm:"not null" json:"start_time"`
	EndTime        string    `gorm:"not null" json:"end_time"`
	Priority       int       `gorm:"default:0" json:"priority"`
	SkillsRequired SkillSet  `gorm:"serializer:json" json:"skills_required,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	Role *Role `gorm:"foreignKey:RoleID" json:"-"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Employee belongs to exactly one role
type Employee struct {
	ID                       uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID                   uuid.UUID    `gorm:"type:uuid;not null" json:"role_id"`
	Name                     string       `gorm:"not null" json:"name"`
	Username                 string       `gorm:"unique;not null" json:"username"`
	PasswordHash             string       `gorm:"not null" json:"-"`
	MonthlyOvertimeUsed      float64      `gorm:"default:0" json:"monthly_overtime_used"`
	YearlyPaidLeaveAllowance *int         `json:"yearly_paid_leave_allowance,omitempty"`
	YearlyPaidLeaveUsed      float64      `gorm:"default:0" json:"yearly_paid_leave_used"`
	Availability             Availability `gorm:"serializer:json" json:"availability,omitempty"`
	Skills                   SkillSet     `gorm:"serializer:json" json:"skills,omitempty"`
	IsActive                 bool         `gorm:"default:true" json:"is_active"`
	CreatedAt                time.Time    `json:"created_at"`

	Role *Role `gorm:"foreignKey:RoleID" json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Holiday blocks scheduling for a date, either everywhere (empty location)
// or for a single location.
type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Date        string    `gorm:"not null;uniqueIndex:idx_holiday_date_location" json:"date"`
	HolidayType string    `json:"holiday_type,omitempty"`
	Location    string    `gorm:"uniqueIndex:idx_holiday_date_location" json:"location,omitempty"`
	IsPaid      bool      `gorm:"default:true" json:"is_paid"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Schedule is one employee assigned to one time window on one date.
// The (employee_id, date) pair is unique: an employee holds at most one
// schedule per date. ShiftID is nil for ad-hoc custom entries.
type Schedule struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_employee_date" json:"employee_id"`
	ShiftID       *uuid.UUID `gorm:"type:uuid" json:"shift_id,omitempty"`
	Date          string     `gorm:"not null;uniqueIndex:idx_schedule_employee_date" json:"date"`
	StartTime     string     `gorm:"not null" json:"start_time"`
	EndTime       string     `gorm:"not null" json:"end_time"`
	OvertimeHours float64    `gorm:"default:0" json:"overtime_hours"`
	IsCustom      bool       `gorm:"default:false" json:"is_custom"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
	Shift    *Shift    `gorm:"foreignKey:ShiftID" json:"-"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Attendance records clock-in/out against a scheduled window
type Attendance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date           string    `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	ScheduledStart string    `json:"scheduled_start,omitempty"`
	ScheduledEnd   string    `json:"scheduled_end,omitempty"`
	ClockIn        string    `json:"clock_in,omitempty"`
	ClockOut       string    `json:"clock_out,omitempty"`
	WorkedHours    float64   `gorm:"default:0" json:"worked_hours"`
	OvertimeHours  float64   `gorm:"default:0" json:"overtime_hours"`
	Status         string    `json:"status,omitempty"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Overtime is an employee's request for extra-hours compensation
type Overtime struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_overtime_employee_date_type" json:"employee_id"`
	Date             string    `gorm:"not null;uniqueIndex:idx_overtime_employee_date_type" json:"date"`
	ActualHours      float64   `gorm:"not null" json:"actual_hours"`
	ApprovedHours    *float64  `json:"approved_hours,omitempty"`
	OvertimeType     string    `gorm:"uniqueIndex:idx_overtime_employee_date_type" json:"overtime_type"`
	CompensationMode string    `json:"compensation_mode"`
	ApprovalStatus   string    `gorm:"default:PENDING" json:"approval_status"`
	CreatedAt        time.Time `json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (o *Overtime) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// EmployeeLeave is a leave request; only APPROVED entries block scheduling.
type EmployeeLeave struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_leave_employee_date" json:"employee_id"`
	LeaveType        string     `json:"leave_type"`
	Date             string     `gorm:"not null;uniqueIndex:idx_leave_employee_date" json:"date"`
	Duration         string     `json:"duration"`
	Reason           string     `json:"reason,omitempty"`
	ApprovalStatus   string     `gorm:"default:PENDING" json:"approval_status"`
	SourceOvertimeID *uuid.UUID `gorm:"type:uuid" json:"source_overtime_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (l *EmployeeLeave) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Admin is the system-level account that manages departments and managers
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

package scheduler

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Fast-failure results returned before any schedule is produced
var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrNoActiveEmployees = errors.New("no active employees found for this role")
	ErrNoShiftsDefined   = errors.New("no shifts defined for this role")
)

// SkipReason explains why a day or shift was left unfilled
type SkipReason string

const (
	ReasonHoliday              SkipReason = "Holiday"
	ReasonNoAvailableEmployees SkipReason = "No available employees"
	ReasonAlreadyScheduled     SkipReason = "Already scheduled"
)

// Role carries the scheduling constraints of the role being filled
type Role struct {
	ID               uuid.UUID
	Name             string
	WorkDays         []string // weekday tokens, e.g. "Mon"; empty = unrestricted
	WeeklyHoursLimit *float64 // nil = no cap
}

// Shift is a recurring weekday template. DayOfWeek is ISO, 1=Monday.
// EndTime before StartTime means the shift crosses midnight.
type Shift struct {
	ID             uuid.UUID
	Name           string
	DayOfWeek      int
	StartTime      string // "HH:MM"
	EndTime        string
	Priority       int
	SkillsRequired []string
}

// Employee is a candidate for assignment. Availability maps ISO weekday
// numbers to an effective available flag; weekdays without an entry are
// available.
type Employee struct {
	ID           uuid.UUID
	Name         string
	IsActive     bool
	Skills       []string
	Availability map[int]bool
}

// Holiday blocks a whole date. Empty Location applies everywhere.
type Holiday struct {
	Date     string // "2006-01-02"
	Location string
}

// ScheduleEntry is an existing or newly created assignment, carried for
// conflict detection and weekly-hour accumulation.
type ScheduleEntry struct {
	EmployeeID uuid.UUID
	Date       string
	StartTime  string
	EndTime    string
}

// Snapshot is the read-only input the engine works from. Shifts keep their
// definition order (the priority tie-break) and Employees keep the role's
// listing order (the selection order).
type Snapshot struct {
	Role          *Role
	Shifts        []Shift
	Employees     []Employee
	Holidays      []Holiday
	ApprovedLeave map[string]bool // keyed by LeaveKey
	Existing      []ScheduleEntry
}

func slotKey(employeeID uuid.UUID, date string) string {
	return employeeID.String() + "|" + date
}

// LeaveKey builds the ApprovedLeave lookup key for an employee and date.
func LeaveKey(employeeID uuid.UUID, date string) string {
	return slotKey(employeeID, date)
}

// CreatedSchedule is one assignment produced by a run
type CreatedSchedule struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee"`
	ShiftID      uuid.UUID `json:"shift_id"`
	ShiftName    string    `json:"shift"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
}

// Skip records a day or shift the run left unfilled
type Skip struct {
	Date     string     `json:"date"`
	Shift    string     `json:"shift,omitempty"`
	Employee string     `json:"employee,omitempty"`
	Reason   SkipReason `json:"reason"`
}

// Result summarizes a generation run. The caller persists Schedules in one
// transaction; the engine itself writes nothing.
type Result struct {
	Created        int               `json:"created"`
	Skipped        int               `json:"skipped"`
	Schedules      []CreatedSchedule `json:"schedules"`
	SkippedDetails []Skip            `json:"skipped_details"`
}

// ShiftHours returns the elapsed hours between two "HH:MM" times on a
// nominal day. An end before the start means the window wraps past
// midnight, so a day is added before subtracting.
func ShiftHours(start, end string) float64 {
	startT, err := time.Parse(timeLayout, start)
	if err != nil {
		return 0
	}
	endT, err := time.Parse(timeLayout, end)
	if err != nil {
		return 0
	}
	if endT.Before(startT) {
		endT = endT.Add(24 * time.Hour)
	}
	return endT.Sub(startT).Hours()
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(d time.Time) int {
	return (int(d.Weekday())+6)%7 + 1
}

// engine holds the mutable per-run state: the conflict set and the growing
// schedule list that feeds weekly-hour accumulation.
type engine struct {
	snap  Snapshot
	taken map[string]bool
	rows  []ScheduleEntry
}

func (e *engine) isHoliday(date, location string) bool {
	for _, h := range e.snap.Holidays {
		if h.Date != date {
			continue
		}
		if location == "" || h.Location == "" || h.Location == location {
			return true
		}
	}
	return false
}

// isEligible applies the assignment rules in order, stopping at the first
// failure: active, no approved leave, role work day, weekday availability,
// required skills.
func (e *engine) isEligible(emp *Employee, day time.Time, date string, shift *Shift) bool {
	if !emp.IsActive {
		return false
	}
	if e.snap.ApprovedLeave[LeaveKey(emp.ID, date)] {
		return false
	}
	if len(e.snap.Role.WorkDays) > 0 {
		token := day.Format("Mon")
		found := false
		for _, d := range e.snap.Role.WorkDays {
			if d == token {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if avail, ok := emp.Availability[ISOWeekday(day)]; ok && !avail {
		return false
	}
	for _, req := range shift.SkillsRequired {
		found := false
		for _, have := range emp.Skills {
			if have == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// weeklyScheduledHours sums the hours of every schedule for the employee in
// the Monday-to-Sunday week containing day, including rows created earlier
// in the same run.
func (e *engine) weeklyScheduledHours(employeeID uuid.UUID, day time.Time) float64 {
	weekStart := day.AddDate(0, 0, -(ISOWeekday(day) - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)

	total := 0.0
	for _, row := range e.rows {
		if row.EmployeeID != employeeID {
			continue
		}
		d, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			continue
		}
		if d.Before(weekStart) || d.After(weekEnd) {
			continue
		}
		total += ShiftHours(row.StartTime, row.EndTime)
	}
	return total
}

func (e *engine) fitsWeeklyCap(emp *Employee, day time.Time, shift *Shift) bool {
	limit := e.snap.Role.WeeklyHoursLimit
	if limit == nil {
		return true
	}
	return e.weeklyScheduledHours(emp.ID, day)+ShiftHours(shift.StartTime, shift.EndTime) <= *limit
}

// Generate assigns the role's shift templates across [start, end] inclusive.
// One synchronous pass: per date it skips holidays wholesale, orders that
// weekday's shifts by descending priority (definition order breaks ties),
// and fills each with the first listed employee that passes eligibility and
// the weekly cap. A selected employee already holding a schedule that date
// leaves the shift unfilled for this run.
func Generate(snap Snapshot, start, end time.Time, location string) (*Result, error) {
	if snap.Role == nil {
		return nil, ErrRoleNotFound
	}
	activeCount := 0
	for i := range snap.Employees {
		if snap.Employees[i].IsActive {
			activeCount++
		}
	}
	if activeCount == 0 {
		return nil, ErrNoActiveEmployees
	}
	if len(snap.Shifts) == 0 {
		return nil, ErrNoShiftsDefined
	}

	e := &engine{
		snap:  snap,
		taken: make(map[string]bool, len(snap.Existing)),
		rows:  append([]ScheduleEntry(nil), snap.Existing...),
	}
	for _, row := range snap.Existing {
		e.taken[slotKey(row.EmployeeID, row.Date)] = true
	}

	result := &Result{
		Schedules:      []CreatedSchedule{},
		SkippedDetails: []Skip{},
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)

		if e.isHoliday(date, location) {
			result.SkippedDetails = append(result.SkippedDetails, Skip{
				Date:   date,
				Reason: ReasonHoliday,
			})
			continue
		}

		dow := ISOWeekday(day)
		var dayShifts []Shift
		for _, shift := range snap.Shifts {
			if shift.DayOfWeek == dow {
				dayShifts = append(dayShifts, shift)
			}
		}
		sort.SliceStable(dayShifts, func(i, j int) bool {
			return dayShifts[i].Priority > dayShifts[j].Priority
		})

		for i := range dayShifts {
			shift := &dayShifts[i]

			var selected *Employee
			for j := range snap.Employees {
				emp := &snap.Employees[j]
				if e.isEligible(emp, day, date, shift) && e.fitsWeeklyCap(emp, day, shift) {
					selected = emp
					break
				}
			}

			if selected == nil {
				result.SkippedDetails = append(result.SkippedDetails, Skip{
					Date:   date,
					Shift:  shift.Name,
					Reason: ReasonNoAvailableEmployees,
				})
				continue
			}

			if e.taken[slotKey(selected.ID, date)] {
				result.SkippedDetails = append(result.SkippedDetails, Skip{
					Date:     date,
					Employee: selected.Name,
					Reason:   ReasonAlreadyScheduled,
				})
				continue
			}

			e.taken[slotKey(selected.ID, date)] = true
			e.rows = append(e.rows, ScheduleEntry{
				EmployeeID: selected.ID,
				Date:       date,
				StartTime:  shift.StartTime,
				EndTime:    shift.EndTime,
			})
			result.Schedules = append(result.Schedules, CreatedSchedule{
				EmployeeID:   selected.ID,
				EmployeeName: selected.Name,
				ShiftID:      shift.ID,
				ShiftName:    shift.Name,
				Date:         date,
				StartTime:    shift.StartTime,
				EndTime:      shift.EndTime,
			})
		}
	}

	result.Created = len(result.Schedules)
	result.Skipped = len(result.SkippedDetails)
	return result, nil
}

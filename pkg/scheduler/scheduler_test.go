package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func date(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// newSnapshot builds a one-role snapshot with sensible defaults
func newSnapshot(role Role, shifts []Shift, employees []Employee) Snapshot {
	return Snapshot{
		Role:          &role,
		Shifts:        shifts,
		Employees:     employees,
		ApprovedLeave: map[string]bool{},
	}
}

func TestShiftHours(t *testing.T) {
	assert.Equal(t, 8.0, ShiftHours("09:00", "17:00"))
	assert.Equal(t, 0.5, ShiftHours("09:00", "09:30"))
	// Overnight shifts wrap past midnight
	assert.Equal(t, 8.0, ShiftHours("22:00", "06:00"))
	assert.Equal(t, 24.0, ShiftHours("00:00", "00:00"))
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(date("2024-01-01"))) // Monday
	assert.Equal(t, 7, ISOWeekday(date("2024-01-07"))) // Sunday
}

func TestGenerate_FastFailures(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}

	_, err := Generate(Snapshot{}, date("2024-01-01"), date("2024-01-01"), "")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, nil)
	_, err = Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	assert.ErrorIs(t, err, ErrNoActiveEmployees)

	snap = newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, []Employee{{ID: uuid.New(), IsActive: false}})
	_, err = Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	assert.ErrorIs(t, err, ErrNoActiveEmployees)

	snap = newSnapshot(Role{ID: uuid.New()}, nil, []Employee{emp})
	_, err = Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	assert.ErrorIs(t, err, ErrNoShiftsDefined)
}

// The single-shift, single-employee base case: one Monday, one schedule.
func TestGenerate_SingleShift(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(
		Role{ID: uuid.New(), Name: "Barista", WeeklyHoursLimit: floatPtr(40)},
		[]Shift{shift},
		[]Employee{emp},
	)

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Schedules, 1)

	created := result.Schedules[0]
	assert.Equal(t, emp.ID, created.EmployeeID)
	assert.Equal(t, shift.ID, created.ShiftID)
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "17:00", created.EndTime)
}

func TestGenerate_Idempotent(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shifts := []Shift{
		{ID: uuid.New(), Name: "Mon Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{ID: uuid.New(), Name: "Tue Morning", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}
	snap := newSnapshot(Role{ID: uuid.New()}, shifts, []Employee{emp})

	first, err := Generate(snap, date("2024-01-01"), date("2024-01-02"), "")
	require.NoError(t, err)
	require.Equal(t, 2, first.Created)

	// Feed the first run's output back as existing state
	for _, created := range first.Schedules {
		snap.Existing = append(snap.Existing, ScheduleEntry{
			EmployeeID: created.EmployeeID,
			Date:       created.Date,
			StartTime:  created.StartTime,
			EndTime:    created.EndTime,
		})
	}

	second, err := Generate(snap, date("2024-01-01"), date("2024-01-02"), "")
	require.NoError(t, err)

	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)
	for _, skip := range second.SkippedDetails {
		assert.Equal(t, ReasonAlreadyScheduled, skip.Reason)
		assert.Equal(t, "E1", skip.Employee)
	}
}

func TestGenerate_HolidaySkipsWholeDay(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shifts := []Shift{
		{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
		{ID: uuid.New(), Name: "Evening", DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
	}
	snap := newSnapshot(Role{ID: uuid.New()}, shifts, []Employee{emp})
	snap.Holidays = []Holiday{{Date: "2024-01-01"}}

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, ReasonHoliday, result.SkippedDetails[0].Reason)
	assert.Equal(t, "2024-01-01", result.SkippedDetails[0].Date)
}

func TestGenerate_HolidayLocationScoping(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, []Employee{emp})
	snap.Holidays = []Holiday{{Date: "2024-01-01", Location: "Berlin"}}

	// A different location is not blocked by a Berlin-only holiday
	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "Munich")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	// The matching location is blocked
	result, err = Generate(snap, date("2024-01-01"), date("2024-01-01"), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)

	// A run without a location is blocked by any holiday on the date
	result, err = Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
}

func TestGenerate_EligibilityRules(t *testing.T) {
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	skillShift := Shift{ID: uuid.New(), Name: "Forklift", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00",
		SkillsRequired: []string{"forklift-license"}}

	tests := []struct {
		name     string
		role     Role
		shift    Shift
		employee Employee
		leave    bool
	}{
		{
			name:     "approved leave blocks",
			role:     Role{ID: uuid.New()},
			shift:    shift,
			employee: Employee{ID: uuid.New(), Name: "E1", IsActive: true},
			leave:    true,
		},
		{
			name:     "work-day restriction blocks",
			role:     Role{ID: uuid.New(), WorkDays: []string{"Tue", "Wed"}},
			shift:    shift,
			employee: Employee{ID: uuid.New(), Name: "E1", IsActive: true},
		},
		{
			name:  "availability false blocks",
			role:  Role{ID: uuid.New()},
			shift: shift,
			employee: Employee{ID: uuid.New(), Name: "E1", IsActive: true,
				Availability: map[int]bool{1: false}},
		},
		{
			name:     "missing skill blocks",
			role:     Role{ID: uuid.New()},
			shift:    skillShift,
			employee: Employee{ID: uuid.New(), Name: "E1", IsActive: true, Skills: []string{"barista"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newSnapshot(tt.role, []Shift{tt.shift}, []Employee{tt.employee})
			if tt.leave {
				snap.ApprovedLeave[LeaveKey(tt.employee.ID, "2024-01-01")] = true
			}

			result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
			require.NoError(t, err)

			assert.Equal(t, 0, result.Created)
			require.Len(t, result.SkippedDetails, 1)
			assert.Equal(t, ReasonNoAvailableEmployees, result.SkippedDetails[0].Reason)
		})
	}
}

func TestGenerate_AvailabilityEntryWithoutFlagAllows(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true,
		Availability: map[int]bool{1: true}}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, []Employee{emp})

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

// An employee already carrying 38 hours in the week must not receive a
// 4-hour shift under a 40-hour cap.
func TestGenerate_WeeklyCapExcludes(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Wed Short", DayOfWeek: 3, StartTime: "10:00", EndTime: "14:00"}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(40)},
		[]Shift{shift},
		[]Employee{emp},
	)
	snap.Existing = []ScheduleEntry{
		{EmployeeID: emp.ID, Date: "2024-01-01", StartTime: "00:00", EndTime: "19:00"}, // 19h
		{EmployeeID: emp.ID, Date: "2024-01-02", StartTime: "00:00", EndTime: "19:00"}, // 19h
	}

	result, err := Generate(snap, date("2024-01-03"), date("2024-01-03"), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, ReasonNoAvailableEmployees, result.SkippedDetails[0].Reason)
}

// Hours committed earlier in the same run count against the cap for later
// dates of the same week.
func TestGenerate_WeeklyCapAccumulatesWithinRun(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shifts := []Shift{
		{ID: uuid.New(), Name: "Mon", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{ID: uuid.New(), Name: "Tue", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		{ID: uuid.New(), Name: "Wed", DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
	}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(16)},
		shifts,
		[]Employee{emp},
	)

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-03"), "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, "2024-01-03", result.SkippedDetails[0].Date)
	assert.Equal(t, ReasonNoAvailableEmployees, result.SkippedDetails[0].Reason)
}

// The cap resets across the Monday week boundary.
func TestGenerate_WeeklyCapResetsNextWeek(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	shifts := []Shift{
		{ID: uuid.New(), Name: "Sun", DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
		{ID: uuid.New(), Name: "Mon", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
	}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(8)},
		shifts,
		[]Employee{emp},
	)

	// 2024-01-07 is a Sunday, 2024-01-08 the following Monday
	result, err := Generate(snap, date("2024-01-07"), date("2024-01-08"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
}

// With a sole eligible employee and a binding cap, the priority-5 shift
// wins and the priority-1 shift finds an empty pool.
func TestGenerate_PriorityOrdering(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	low := Shift{ID: uuid.New(), Name: "Low", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Priority: 1}
	high := Shift{ID: uuid.New(), Name: "High", DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00", Priority: 5}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(8)},
		[]Shift{low, high}, // defined low-first; priority must override
		[]Employee{emp},
	)

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, high.ID, result.Schedules[0].ShiftID)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, "Low", result.SkippedDetails[0].Shift)
	assert.Equal(t, ReasonNoAvailableEmployees, result.SkippedDetails[0].Reason)
}

// Equal priorities keep their definition order.
func TestGenerate_PriorityTieBreaksByDefinitionOrder(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	first := Shift{ID: uuid.New(), Name: "First", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Priority: 3}
	second := Shift{ID: uuid.New(), Name: "Second", DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00", Priority: 3}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(8)},
		[]Shift{first, second},
		[]Employee{emp},
	)

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	require.Len(t, result.Schedules, 1)
	assert.Equal(t, first.ID, result.Schedules[0].ShiftID)
}

// When the selected candidate already holds a schedule that date, the shift
// is left unfilled rather than falling through to the next candidate.
func TestGenerate_ConflictSkipsShiftEntirely(t *testing.T) {
	e1 := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	e2 := Employee{ID: uuid.New(), Name: "E2", IsActive: true}
	morning := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00", Priority: 2}
	evening := Shift{ID: uuid.New(), Name: "Evening", DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00", Priority: 1}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{morning, evening}, []Employee{e1, e2})

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	// E1 takes Morning; for Evening E1 is still first in the pool but now
	// conflicts, so Evening stays unfilled and E2 gets nothing.
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, e1.ID, result.Schedules[0].EmployeeID)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, ReasonAlreadyScheduled, result.SkippedDetails[0].Reason)
	assert.Equal(t, "E1", result.SkippedDetails[0].Employee)
}

// First-candidate selection follows the role's employee listing order.
func TestGenerate_FirstListedCandidateWins(t *testing.T) {
	e1 := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	e2 := Employee{ID: uuid.New(), Name: "E2", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, []Employee{e1, e2})

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, e1.ID, result.Schedules[0].EmployeeID)
}

// An ineligible first candidate falls out of the pool before selection, so
// the next listed employee is chosen.
func TestGenerate_IneligibleCandidateFallsThrough(t *testing.T) {
	e1 := Employee{ID: uuid.New(), Name: "E1", IsActive: true, Availability: map[int]bool{1: false}}
	e2 := Employee{ID: uuid.New(), Name: "E2", IsActive: true}
	shift := Shift{ID: uuid.New(), Name: "Morning", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{shift}, []Employee{e1, e2})

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, e2.ID, result.Schedules[0].EmployeeID)
}

// Overnight shifts count their wrapped duration against the weekly cap.
func TestGenerate_OvernightShiftHoursAgainstCap(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	night := Shift{ID: uuid.New(), Name: "Night", DayOfWeek: 1, StartTime: "22:00", EndTime: "06:00"}
	snap := newSnapshot(
		Role{ID: uuid.New(), WeeklyHoursLimit: floatPtr(6)},
		[]Shift{night},
		[]Employee{emp},
	)

	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)

	// 8 wrapped hours exceed the 6-hour cap
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.SkippedDetails, 1)
	assert.Equal(t, ReasonNoAvailableEmployees, result.SkippedDetails[0].Reason)
}

func TestGenerate_SkipsShiftsOnOtherWeekdays(t *testing.T) {
	emp := Employee{ID: uuid.New(), Name: "E1", IsActive: true}
	tueShift := Shift{ID: uuid.New(), Name: "Tue Only", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"}
	snap := newSnapshot(Role{ID: uuid.New()}, []Shift{tueShift}, []Employee{emp})

	// Monday only: the Tuesday template produces nothing, not even a skip
	result, err := Generate(snap, date("2024-01-01"), date("2024-01-01"), "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Skipped)
}

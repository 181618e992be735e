package models

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// WorkDays is the set of weekday tokens a role operates on, e.g.
// ["Mon","Tue","Wed"]. Tokens match time.Time.Format("Mon").
type WorkDays []string

var dayTokens = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// Contains reports whether the set includes the given weekday token.
// An empty set places no restriction.
func (w WorkDays) Contains(token string) bool {
	for _, d := range w {
		if d == token {
			return true
		}
	}
	return false
}

func (w WorkDays) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("work_days must not be empty")
	}
	seen := make(map[string]bool, len(w))
	for _, d := range w {
		if !dayTokens[d] {
			return fmt.Errorf("invalid work day %q", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate work day %q", d)
		}
		seen[d] = true
	}
	return nil
}

// SkillSet is a set of skill identifiers carried by employees and required
// by shifts.
type SkillSet []string

// ContainsAll reports whether every skill in required is present.
// An empty requirement always passes.
func (s SkillSet) ContainsAll(required SkillSet) bool {
	for _, req := range required {
		found := false
		for _, have := range s {
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

// DayAvailability is one weekday's availability entry. A nil Available
// means available; only an explicit false blocks assignment. Start/End
// optionally narrow the window ("HH:MM").
type DayAvailability struct {
	Available *bool  `json:"available,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
}

// Availability maps ISO weekday numbers ("1"=Monday .. "7"=Sunday) to
// day entries. Weekdays without an entry are available.
type Availability map[string]DayAvailability

func (a Availability) Validate() error {
	for key, day := range a {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > 7 {
			return fmt.Errorf("availability key %q is not a weekday number 1-7", key)
		}
		if day.Start != "" {
			if err := validate.Var(day.Start, "datetime=15:04"); err != nil {
				return fmt.Errorf("availability start for day %s: %w", key, err)
			}
		}
		if day.End != "" {
			if err := validate.Var(day.End, "datetime=15:04"); err != nil {
				return fmt.Errorf("availability end for day %s: %w", key, err)
			}
		}
	}
	return nil
}

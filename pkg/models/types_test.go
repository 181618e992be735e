package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkDaysValidate(t *testing.T) {
	assert.NoError(t, WorkDays{"Mon", "Tue", "Fri"}.Validate())
	assert.Error(t, WorkDays{}.Validate())
	assert.Error(t, WorkDays{"Monday"}.Validate())
	assert.Error(t, WorkDays{"Mon", "Mon"}.Validate())
}

func TestWorkDaysContains(t *testing.T) {
	w := WorkDays{"Mon", "Wed"}
	assert.True(t, w.Contains("Mon"))
	assert.False(t, w.Contains("Tue"))
}

func TestSkillSetContainsAll(t *testing.T) {
	have := SkillSet{"barista", "cashier"}
	assert.True(t, have.ContainsAll(nil))
	assert.True(t, have.ContainsAll(SkillSet{"barista"}))
	assert.True(t, have.ContainsAll(SkillSet{"barista", "cashier"}))
	assert.False(t, have.ContainsAll(SkillSet{"forklift-license"}))
}

func TestAvailabilityValidate(t *testing.T) {
	no := false
	ok := Availability{
		"1": {Start: "09:00", End: "17:00"},
		"6": {Available: &no},
		"7": {},
	}
	assert.NoError(t, ok.Validate())

	assert.Error(t, Availability{"8": {}}.Validate())
	assert.Error(t, Availability{"0": {}}.Validate())
	assert.Error(t, Availability{"mon": {}}.Validate())
	assert.Error(t, Availability{"1": {Start: "9am"}}.Validate())
	assert.Error(t, Availability{"1": {End: "25:00"}}.Validate())
}

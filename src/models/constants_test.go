package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBloodType(t *testing.T) {
	for _, bt := range BloodTypes {
		assert.True(t, ValidBloodType(bt), bt)
	}
	assert.False(t, ValidBloodType(""))
	assert.False(t, ValidBloodType("C+"))
	assert.False(t, ValidBloodType("a+"))
}

func TestValidHospital(t *testing.T) {
	assert.True(t, ValidHospital("Mayo Hospital, Lahore"))
	assert.False(t, ValidHospital("Unknown Clinic"))
	assert.False(t, ValidHospital(""))
}

// Active requests are listed with an ascending sort on requestType so that
// emergencies come first. That only holds while the emergency constant sorts
// before the normal one.
func TestEmergencySortsBeforeNormal(t *testing.T) {
	assert.Less(t, RequestEmergency, RequestNormal)
}

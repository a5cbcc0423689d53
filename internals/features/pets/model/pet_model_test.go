package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	assert.True(t, CanTransitionStatus(PetAvailable, PetPending))
	assert.True(t, CanTransitionStatus(PetAvailable, PetFostered))
	assert.True(t, CanTransitionStatus(PetAvailable, PetMissing))
	assert.True(t, CanTransitionStatus(PetPending, PetAdopted))
	assert.True(t, CanTransitionStatus(PetPending, PetAvailable), "a fallen-through adoption relists the pet")
	assert.True(t, CanTransitionStatus(PetFostered, PetAvailable))
	assert.True(t, CanTransitionStatus(PetMissing, PetAvailable))

	assert.False(t, CanTransitionStatus(PetAvailable, PetAdopted), "adoption goes through pending")
	assert.False(t, CanTransitionStatus(PetAdopted, PetAvailable), "adopted is terminal")
	assert.False(t, CanTransitionStatus(PetAdopted, PetPending))
	assert.False(t, CanTransitionStatus(PetFostered, PetAdopted))
}

func TestIsAvailableForAdoption(t *testing.T) {
	p := &PetModel{PetStatus: PetAvailable, PetIsActive: true}
	assert.True(t, p.IsAvailableForAdoption())

	p.PetStatus = PetAdopted
	assert.False(t, p.IsAvailableForAdoption())

	p.PetStatus = PetAvailable
	p.PetIsActive = false
	assert.False(t, p.IsAvailableForAdoption(), "inactive listings are never adoptable")
}

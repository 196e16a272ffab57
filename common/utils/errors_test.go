package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		Check(errors.New("listener gone"), "could not bind listener")
	})

	assert.NotPanics(t, func() {
		Check(nil, "could not bind listener")
	})
}

func TestAssertPanicsWhenConditionFails(t *testing.T) {
	assert.Panics(t, func() {
		Assert(false, "presets must define the raider unit type")
	})

	assert.NotPanics(t, func() {
		Assert(true, "presets must define the raider unit type")
	})
}

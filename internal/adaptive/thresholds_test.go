package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestController() *Controller {
	return NewController(6.0, 6.0, 5.0, 5.2, 0.55, 0.35)
}

func TestControllerStrictEarlyInRun(t *testing.T) {
	c := newTestController()

	got := c.For(1, 10, 0, 50)
	assert.Equal(t, c.Strict(), got)
	assert.False(t, got.Relaxed)
}

func TestControllerRelaxesWhenRecallLags(t *testing.T) {
	c := newTestController()

	// 60% through the run with only 20% of the target collected.
	got := c.For(6, 10, 10, 50)
	assert.True(t, got.Relaxed)
	assert.Equal(t, 5.0, got.PreRankMin)
	assert.Equal(t, 5.2, got.ClassifierMin)
}

func TestControllerDecisionIsNotSticky(t *testing.T) {
	c := newTestController()

	relaxed := c.For(6, 10, 10, 50)
	assert.True(t, relaxed.Relaxed)

	// Collection catches up: back to strict on the very next thread.
	recovered := c.For(7, 10, 20, 50)
	assert.False(t, recovered.Relaxed)
	assert.Equal(t, c.Strict(), recovered)
}

func TestControllerBoundaryConditions(t *testing.T) {
	c := newTestController()

	// Exactly at the trigger with recall just under the floor.
	atTrigger := c.For(55, 100, 17, 50) // progress 0.55, collected 0.34
	assert.True(t, atTrigger.Relaxed)

	// Collected ratio exactly at the floor stays strict.
	atFloor := c.For(55, 100, 35, 100)
	assert.False(t, atFloor.Relaxed)
}

func TestControllerZeroDenominators(t *testing.T) {
	c := newTestController()

	got := c.For(0, 0, 0, 0)
	assert.False(t, got.Relaxed)
}

// internal/pkg/event/event_test.go
package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitFansOutInRegistrationOrder(t *testing.T) {
	var e Emitter[int]
	var seen []string

	e.Subscribe(func(v int) { seen = append(seen, "a") })
	e.Subscribe(func(v int) { seen = append(seen, "b") })

	e.Emit(1)
	e.Emit(2)

	assert.Equal(t, []string{"a", "b", "a", "b"}, seen)
}

func TestEmitWithoutSubscribers(t *testing.T) {
	var e Emitter[string]
	assert.NotPanics(t, func() { e.Emit("ignored") })
}

func TestSubscribeDuringEmitDoesNotDeadlock(t *testing.T) {
	var e Emitter[int]
	var late int

	e.Subscribe(func(v int) {
		e.Subscribe(func(v int) { late++ })
	})

	e.Emit(1)
	assert.Zero(t, late, "a handler added mid-emit only sees later emissions")

	e.Emit(2)
	assert.Equal(t, 1, late)
}

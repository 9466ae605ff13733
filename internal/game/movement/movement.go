// Package movement moves an agent toward its target and back, reporting each
// finished leg through a completion channel the battle session polls.
package movement

import (
	"time"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
)

// Phase identifies which leg of a move finished.
type Phase int

const (
	Going Phase = iota
	Returning
)

// String returns "going" or "returning".
func (p Phase) String() string {
	if p == Returning {
		return "returning"
	}
	return "going"
}

// Driver is the movement collaborator an ability use talks to.
type Driver interface {
	// MoveOut starts moving a toward the side of the field at towardX.
	MoveOut(a *agent.Agent, towardX float64)
	// Return starts moving the agent last moved out back to its origin.
	Return()
	// Update advances any motion in progress.
	Update(delta time.Duration)
	// Done delivers one Phase per completed leg.
	Done() <-chan Phase
}

// Animator is the default Driver. It moves the agent Offset units toward the
// target side at Speed units per update and snaps on arrival.
type Animator struct {
	speed  float64
	offset float64

	agent   *agent.Agent
	originX float64
	destX   float64
	phase   Phase
	moving  bool
	done    chan Phase
}

// NewAnimator returns an idle Animator.
//
// Precondition: speed > 0.
func NewAnimator(speed, offset float64) *Animator {
	if speed <= 0 {
		panic("movement: NewAnimator called with speed <= 0")
	}
	return &Animator{
		speed:  speed,
		offset: offset,
		done:   make(chan Phase, 2),
	}
}

// MoveOut starts the outgoing leg.
func (m *Animator) MoveOut(a *agent.Agent, towardX float64) {
	m.agent = a
	m.originX = a.X
	if towardX < a.X {
		m.destX = a.X - m.offset
	} else {
		m.destX = a.X + m.offset
	}
	m.phase = Going
	m.moving = true
}

// Return starts the leg back to the position recorded by MoveOut.
//
// Precondition: MoveOut was called.
func (m *Animator) Return() {
	if m.agent == nil {
		panic("movement: Return called before MoveOut")
	}
	m.destX = m.originX
	m.phase = Returning
	m.moving = true
}

// Update steps the agent once. The delta is ignored; motion is per update.
func (m *Animator) Update(time.Duration) {
	if !m.moving {
		return
	}
	dx := m.destX - m.agent.X
	if dx <= m.speed && dx >= -m.speed {
		m.agent.X = m.destX
		m.moving = false
		m.done <- m.phase
		return
	}
	if dx > 0 {
		m.agent.X += m.speed
	} else {
		m.agent.X -= m.speed
	}
}

// Done delivers each completed leg.
func (m *Animator) Done() <-chan Phase { return m.done }

// Moving reports whether a leg is in progress.
func (m *Animator) Moving() bool { return m.moving }

package battle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/quackbattle/internal/game/combat"
)

// Award is the experience one surviving party member received.
type Award struct {
	Agent        string
	XP           int
	LevelsGained int
}

// Result summarises a finished encounter.
type Result struct {
	ID          uuid.UUID
	Outcome     combat.Outcome
	Segment     int
	Turns       int
	XPPool      int
	Awards      []Award
	Drop        int
	ScoreBefore int
	ScoreAfter  int
	Messages    []string
	StartedAt   time.Time
	EndedAt     time.Time
}

// Recorder persists finished encounters.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Score is the points total carried from one encounter to the next.
type Score struct {
	Points int
}

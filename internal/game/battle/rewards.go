package battle

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
)

// XPPool returns the base experience for beating enemies: the sum over each
// enemy of floor(ln(level) * 3).
func XPPool(enemies []*agent.Agent) int {
	pool := 0
	for _, e := range enemies {
		pool += int(math.Log(float64(e.Stats().Level())) * 3)
	}
	return pool
}

// applyWin hands out experience, revives fallen members on 1 HP, raises the
// score, notifies the objective and rolls the consumable drop.
func (s *Session) applyWin(r *Result) {
	r.Messages = append(r.Messages, "You Won!")
	r.XPPool = XPPool(s.enemies)

	for _, m := range s.party.Members() {
		if m.IsDead() {
			m.Heal(1)
			continue
		}
		xp := int(math.Floor(float64(r.XPPool)*dice.Jitter(s.dice, s.opts.XPJitter) + 0.5))
		levels := m.Stats().IncreaseXP(xp)
		r.Awards = append(r.Awards, Award{Agent: m.Name(), XP: xp, LevelsGained: levels})
		r.Messages = append(r.Messages, fmt.Sprintf("%s received %d experience.", m.Name(), xp))
		if levels > 0 {
			r.Messages = append(r.Messages, fmt.Sprintf("%s levelled up to level %d.", m.Name(), m.Stats().Level()))
		}
	}

	s.score.Points = int(float64(s.score.Points) + float64(r.XPPool)*s.opts.WinMultiplier)
	s.objective.OnBattleWon(s.enemies)

	r.Drop = dice.Between(s.dice, 0, s.opts.MaxDrop)
	if r.Drop != 0 {
		s.party.AddConsumable(r.Drop)
	}
	s.logger.Info("battle won",
		zap.Int("xp_pool", r.XPPool),
		zap.Int("drop", r.Drop),
		zap.Int("score", s.score.Points),
	)
}

// applyLoss takes LossFraction of the score. Experience and HP are untouched.
func (s *Session) applyLoss(r *Result) {
	r.Messages = append(r.Messages, "You Lost.")
	s.score.Points = int(float64(s.score.Points) - float64(s.score.Points)*s.opts.LossFraction)
	s.logger.Info("battle lost", zap.Int("score", s.score.Points))
}

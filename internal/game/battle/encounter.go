package battle

import (
	"fmt"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/equipment"
)

const (
	// TemplatesPerSegment is the number of enemy templates authored per map segment.
	TemplatesPerSegment = 3
	// MaxEnemies is the largest enemy roster an encounter draws.
	MaxEnemies = 4
)

// Templates supplies enemy definitions and the equipment they reference.
type Templates interface {
	equipment.Lookup
	Enemies() []catalog.AgentDef
	Boss() (catalog.AgentDef, bool)
}

// NewEncounter draws between 1 and MaxEnemies enemies for segment, each
// picked uniformly from the segment's templates and built fresh.
func NewEncounter(tpl Templates, segment int, src dice.Source) ([]*agent.Agent, error) {
	defs := tpl.Enemies()
	base := segment * TemplatesPerSegment
	if segment < 0 || base+TemplatesPerSegment > len(defs) {
		return nil, fmt.Errorf("battle: no enemy templates for segment %d (have %d templates)", segment, len(defs))
	}
	n := dice.Between(src, 1, MaxEnemies)
	out := make([]*agent.Agent, n)
	for i := range out {
		def := defs[base+src.Intn(TemplatesPerSegment)]
		out[i] = agent.FromDef(def, agent.Enemy, tpl, src)
	}
	return out, nil
}

// NewBossEncounter returns the boss alone.
func NewBossEncounter(tpl Templates, src dice.Source) ([]*agent.Agent, error) {
	def, ok := tpl.Boss()
	if !ok {
		return nil, fmt.Errorf("battle: content defines no boss")
	}
	return []*agent.Agent{agent.FromDef(def, agent.Enemy, tpl, src)}, nil
}

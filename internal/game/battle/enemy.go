package battle

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/ability"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/scripting"
)

// SkillChooser lets a script pick an enemy's skill.
type SkillChooser interface {
	ChooseSkill(script string, self scripting.AgentInfo, skills []int, foes []scripting.AgentInfo) (int, bool)
}

// EnemyController picks the skill an enemy uses on its turn. Without a
// script, or when the script declines, the enemy uses its first listed skill.
type EnemyController struct {
	catalog catalog.Catalog
	chooser SkillChooser
	logger  *zap.Logger
}

// NewEnemyController returns a controller. chooser may be nil.
func NewEnemyController(cat catalog.Catalog, chooser SkillChooser, logger *zap.Logger) *EnemyController {
	if cat == nil || logger == nil {
		panic("battle: NewEnemyController called with nil catalog or logger")
	}
	return &EnemyController{catalog: cat, chooser: chooser, logger: logger}
}

// ChooseSkill returns the skill id e uses this turn.
//
// Postcondition: The result is one of e.Skills() and e can pay for it, or it
// is e.Skills()[0].
func (c *EnemyController) ChooseSkill(e *agent.Agent, order []*agent.Agent) int {
	skills := e.Skills()
	fallback := skills[0]
	if c.chooser == nil || e.Script() == "" {
		return fallback
	}
	var foes []scripting.AgentInfo
	for _, a := range order {
		if a.IsFriendly() {
			foes = append(foes, info(a))
		}
	}
	id, ok := c.chooser.ChooseSkill(e.Script(), info(e), skills, foes)
	if !ok {
		return fallback
	}
	if err := ability.CheckMP(e, c.catalog.Skill(id)); err != nil {
		c.logger.Debug("scripted skill unaffordable",
			zap.String("agent", e.Name()),
			zap.Int("skill", id),
		)
		return fallback
	}
	return id
}

func info(a *agent.Agent) scripting.AgentInfo {
	st := a.Stats()
	return scripting.AgentInfo{
		Name:     a.Name(),
		HP:       st.CurrentHP(),
		MaxHP:    st.MaxHP(),
		MP:       st.CurrentMP(),
		MaxMP:    st.MaxMP(),
		Level:    st.Level(),
		Friendly: a.IsFriendly(),
	}
}

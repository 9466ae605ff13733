package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the union of every top-level key a content file may carry.
type document struct {
	Skills      []Skill      `yaml:"skills"`
	Consumables []Consumable `yaml:"consumables"`
	Equipment   []Equipment  `yaml:"equipment"`
	Shops       []Shop       `yaml:"shops"`
	Party       *PartyDef    `yaml:"party"`
	Enemies     []AgentDef   `yaml:"enemies"`
	Boss        *AgentDef    `yaml:"boss"`
}

// LoadFromBytes builds Tables from one or more YAML documents. Lists under the
// same key are concatenated in argument order.
//
// Precondition: ids in each list are dense and start at 1.
// Postcondition: Returns validated Tables, or an error describing the first
// violation.
func LoadFromBytes(docs ...[]byte) (*Tables, error) {
	var merged document
	for i, data := range docs {
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing content document %d: %w", i, err)
		}
		if err := merge(&merged, doc); err != nil {
			return nil, fmt.Errorf("content document %d: %w", i, err)
		}
	}
	return build(merged)
}

// LoadDir reads every *.yaml file in dir, in name order, and builds Tables.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns validated Tables or an error naming the failing file.
func LoadDir(dir string) (*Tables, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %q: %w", dir, err)
	}

	var merged document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := merge(&merged, doc); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return build(merged)
}

func merge(dst *document, src document) error {
	dst.Skills = append(dst.Skills, src.Skills...)
	dst.Consumables = append(dst.Consumables, src.Consumables...)
	dst.Equipment = append(dst.Equipment, src.Equipment...)
	dst.Shops = append(dst.Shops, src.Shops...)
	dst.Enemies = append(dst.Enemies, src.Enemies...)
	if src.Party != nil {
		if dst.Party != nil {
			return fmt.Errorf("party defined more than once")
		}
		dst.Party = src.Party
	}
	if src.Boss != nil {
		if dst.Boss != nil {
			return fmt.Errorf("boss defined more than once")
		}
		dst.Boss = src.Boss
	}
	return nil
}

func build(doc document) (*Tables, error) {
	t := &Tables{
		skills:      append([]Skill{emptySkill()}, doc.Skills...),
		consumables: append([]Consumable{emptyConsumable()}, doc.Consumables...),
		equipment:   append([]Equipment{emptyEquipment()}, doc.Equipment...),
		shops:       doc.Shops,
		enemies:     doc.Enemies,
		boss:        doc.Boss,
	}
	if doc.Party != nil {
		t.party = *doc.Party
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tables) validate() error {
	var errs []string

	for i, s := range t.skills[1:] {
		if s.ID != i+1 {
			errs = append(errs, fmt.Sprintf("skill %q: id must be %d, got %d", s.Name, i+1, s.ID))
		}
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("skill %d: name must not be empty", s.ID))
		}
		if s.MPCost < 0 {
			errs = append(errs, fmt.Sprintf("skill %d: mp_cost must be >= 0", s.ID))
		}
	}
	for i, c := range t.consumables[1:] {
		if c.ID != i+1 {
			errs = append(errs, fmt.Sprintf("consumable %q: id must be %d, got %d", c.Name, i+1, c.ID))
		}
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("consumable %d: name must not be empty", c.ID))
		}
	}
	for i, e := range t.equipment[1:] {
		if e.ID != i+1 {
			errs = append(errs, fmt.Sprintf("equipment %q: id must be %d, got %d", e.Name, i+1, e.ID))
		}
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("equipment %d: name must not be empty", e.ID))
		}
	}
	for i, s := range t.shops {
		if s.ID != i {
			errs = append(errs, fmt.Sprintf("shop %q: id must be %d, got %d", s.Name, i, s.ID))
		}
		errs = append(errs, t.checkIDs(fmt.Sprintf("shop %d equipment", s.ID), s.Equipment, len(t.equipment))...)
		errs = append(errs, t.checkIDs(fmt.Sprintf("shop %d consumables", s.ID), s.Consumables, len(t.consumables))...)
	}

	errs = append(errs, t.checkIDs("party consumables", t.party.Consumables, len(t.consumables))...)
	errs = append(errs, t.checkIDs("party equipment", t.party.Equipment, len(t.equipment))...)
	for _, m := range t.party.Members {
		errs = append(errs, t.validateAgent("party member", m)...)
	}
	for _, e := range t.enemies {
		errs = append(errs, t.validateAgent("enemy", e)...)
	}
	if t.boss != nil {
		errs = append(errs, t.validateAgent("boss", *t.boss)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (t *Tables) validateAgent(role string, a AgentDef) []string {
	var errs []string
	if a.Name == "" {
		errs = append(errs, role+": name must not be empty")
	}
	label := fmt.Sprintf("%s %q", role, a.Name)
	if err := a.Stats.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", label, err))
	}
	if len(a.Skills) == 0 {
		errs = append(errs, label+": must know at least one skill")
	}
	for _, id := range a.Skills {
		if id < 1 || id >= len(t.skills) {
			errs = append(errs, fmt.Sprintf("%s: skill id %d out of range", label, id))
		}
	}
	for i, id := range a.Equipment.Slots() {
		if id < 0 || id >= len(t.equipment) {
			errs = append(errs, fmt.Sprintf("%s: %s equipment id %d out of range", label, Slots[i], id))
			continue
		}
		if id != 0 && t.equipment[id].Slot != Slots[i] {
			errs = append(errs, fmt.Sprintf("%s: equipment %d does not fit slot %s", label, id, Slots[i]))
		}
	}
	return errs
}

func (t *Tables) checkIDs(label string, ids []int, n int) []string {
	var errs []string
	for _, id := range ids {
		if id < 0 || id >= n {
			errs = append(errs, fmt.Sprintf("%s: id %d out of range", label, id))
		}
	}
	return errs
}

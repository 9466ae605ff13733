package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/equipment"
	"github.com/cory-johannsen/quackbattle/internal/testutil"
)

func TestNew_TotalsReflectLoadout(t *testing.T) {
	set := equipment.New(testutil.NewCatalog(t), catalog.Loadout{Head: 1, Feet: 3, Weapon: 5})

	assert.Equal(t, catalog.Modifiers{Speed: 2, Strength: 1, Armor: 1}, set.Totals())
	assert.Equal(t, 3, set.NumberEquipped())
}

func TestEquip_PlacesItemInItsSlot(t *testing.T) {
	set := equipment.New(testutil.NewCatalog(t), catalog.Loadout{})

	set.Equip(7)

	assert.Equal(t, 7, set.Slot(catalog.SlotWeapon))
	assert.True(t, set.IsEquipped(catalog.SlotWeapon))
	assert.False(t, set.IsEquipped(catalog.SlotHead))
	assert.Equal(t, 3, set.Totals().Strength)
}

func TestEquip_ReplacesWithoutDrift(t *testing.T) {
	set := equipment.New(testutil.NewCatalog(t), catalog.Loadout{Weapon: 5})

	set.Equip(7)
	set.Equip(5)
	set.Equip(7)

	assert.Equal(t, 3, set.Totals().Strength)
	assert.Equal(t, 1, set.NumberEquipped())
}

func TestUnequip_ReturnsIDAndRecomputes(t *testing.T) {
	set := equipment.New(testutil.NewCatalog(t), catalog.Loadout{Head: 6, Weapon: 7})

	id := set.Unequip(catalog.SlotHead)

	assert.Equal(t, 6, id)
	assert.Equal(t, 0, set.Totals().Armor)
	assert.Equal(t, 3, set.Totals().Strength)
	assert.Equal(t, 0, set.Unequip(catalog.SlotHead))
}

func TestEquip_UnknownIDPanics(t *testing.T) {
	set := equipment.New(testutil.NewCatalog(t), catalog.Loadout{})
	assert.Panics(t, func() { set.Equip(42) })
}

func TestLoadout_RoundTrips(t *testing.T) {
	in := catalog.Loadout{Head: 1, Chest: 2, Feet: 3, Accessory: 4, Weapon: 5}
	set := equipment.New(testutil.NewCatalog(t), in)
	assert.Equal(t, in, set.Loadout())
}

func TestProperty_TotalsAlwaysMatchFreshSum(t *testing.T) {
	tables := testutil.NewCatalog(t)
	rapid.Check(t, func(rt *rapid.T) {
		set := equipment.New(tables, catalog.Loadout{})
		ops := rapid.SliceOfN(rapid.IntRange(-5, 7), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			if op > 0 {
				set.Equip(op)
			} else {
				set.Unequip(catalog.Slot(-op % catalog.SlotCount))
			}
			var want catalog.Modifiers
			for _, id := range set.Slots() {
				want = want.Add(tables.Equipment(id).Modifiers)
			}
			assert.Equal(rt, want, set.Totals())
		}
	})
}

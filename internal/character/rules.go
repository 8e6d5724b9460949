package character

import (
	"fmt"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Allocate adds each allocation to the character's stats and deducts the
// total from AvailablePoints. Input is trusted; use ValidateAllocation first.
func Allocate(c *domain.Character, allocations map[domain.StatName]int) {
	spent := 0
	for stat, points := range allocations {
		c.Stats.Add(stat, points)
		spent += points
	}
	c.AvailablePoints -= spent
}

// ValidateAllocation checks stat names, rejects negative values and ensures
// the total does not exceed the available points.
func ValidateAllocation(c *domain.Character, allocations map[domain.StatName]int) error {
	if len(allocations) == 0 {
		return fmt.Errorf("%w: no stats to allocate", domain.ErrInvalidInput)
	}

	total := 0
	for stat, points := range allocations {
		if !stat.IsValid() {
			return fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
		}
		if points < 0 {
			return fmt.Errorf("%w: negative allocation for %s", domain.ErrInvalidInput, stat)
		}
		// compared against the remainder so the running total cannot overflow
		if points > c.AvailablePoints-total {
			return fmt.Errorf("%w: %s requests %d, %d remaining of %d",
				domain.ErrInsufficientPoints, stat, points, c.AvailablePoints-total, c.AvailablePoints)
		}
		total += points
	}
	return nil
}

// InvestedPoints returns the sum of every stat's distance from the base value
func InvestedPoints(stats domain.Stats) int {
	return stats.Total() - len(domain.AllStats)*domain.BaseStatValue
}

// Respec resets every stat to the base value and makes the previously
// invested points available again. The refund replaces the current pool.
// Specialization and equipment are left untouched.
func Respec(c *domain.Character) int {
	invested := InvestedPoints(c.Stats)
	c.Stats = domain.BaseStats()
	c.AvailablePoints = invested
	return invested
}

// EffectiveStats applies equipment and specialization bonuses to the base stats
func EffectiveStats(c *domain.Character) domain.Stats {
	stats := c.Stats
	for _, item := range c.Equipment {
		if item.StatBonus != "" {
			stats.Add(item.StatBonus, item.BonusValue)
		}
	}
	if c.Specialization != nil {
		if primary, ok := PrimaryStat(*c.Specialization); ok {
			stats.Add(primary, SpecializationBonus)
		}
	}
	return stats
}

// View builds the read model for a character
func View(c *domain.Character) *domain.CharacterView {
	_, xpToNext := XPProgress(c.Experience)
	view := &domain.CharacterView{
		Character:      *c,
		EffectiveStats: EffectiveStats(c),
		XPToNextLevel:  xpToNext,
	}
	if view.Equipment == nil {
		view.Equipment = []domain.EquippedItem{}
	}
	return view
}

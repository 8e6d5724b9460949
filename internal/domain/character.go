package domain

import "time"

// StatName identifies one of the six character stats
type StatName string

const (
	StatIntelligence StatName = "intelligence"
	StatVitality     StatName = "vitality"
	StatWisdom       StatName = "wisdom"
	StatCharisma     StatName = "charisma"
	StatDexterity    StatName = "dexterity"
	StatCreativity   StatName = "creativity"
)

// BaseStatValue is the value every stat starts at and returns to on respec
const BaseStatValue = 10

// AllStats lists the stats in display order
var AllStats = []StatName{
	StatIntelligence,
	StatVitality,
	StatWisdom,
	StatCharisma,
	StatDexterity,
	StatCreativity,
}

// IsValid reports whether the name is one of the six known stats
func (s StatName) IsValid() bool {
	for _, stat := range AllStats {
		if stat == s {
			return true
		}
	}
	return false
}

// Stats holds the allocated base values of a character
type Stats struct {
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
	Dexterity    int `json:"dexterity"`
	Creativity   int `json:"creativity"`
}

// BaseStats returns a stat block with every stat at BaseStatValue
func BaseStats() Stats {
	return Stats{
		Intelligence: BaseStatValue,
		Vitality:     BaseStatValue,
		Wisdom:       BaseStatValue,
		Charisma:     BaseStatValue,
		Dexterity:    BaseStatValue,
		Creativity:   BaseStatValue,
	}
}

// Get returns the value of the named stat, 0 for unknown names
func (s Stats) Get(name StatName) int {
	switch name {
	case StatIntelligence:
		return s.Intelligence
	case StatVitality:
		return s.Vitality
	case StatWisdom:
		return s.Wisdom
	case StatCharisma:
		return s.Charisma
	case StatDexterity:
		return s.Dexterity
	case StatCreativity:
		return s.Creativity
	}
	return 0
}

// Add increases the named stat by delta. Unknown names are ignored.
func (s *Stats) Add(name StatName, delta int) {
	switch name {
	case StatIntelligence:
		s.Intelligence += delta
	case StatVitality:
		s.Vitality += delta
	case StatWisdom:
		s.Wisdom += delta
	case StatCharisma:
		s.Charisma += delta
	case StatDexterity:
		s.Dexterity += delta
	case StatCreativity:
		s.Creativity += delta
	}
}

// Total returns the sum of all six stats
func (s Stats) Total() int {
	return s.Intelligence + s.Vitality + s.Wisdom + s.Charisma + s.Dexterity + s.Creativity
}

// Specialization is a character archetype chosen once the character qualifies
type Specialization string

const (
	SpecializationScholar   Specialization = "scholar"
	SpecializationGuardian  Specialization = "guardian"
	SpecializationSage      Specialization = "sage"
	SpecializationDiplomat  Specialization = "diplomat"
	SpecializationRanger    Specialization = "ranger"
	SpecializationArtificer Specialization = "artificer"
)

// EquippedItem binds an inventory item to an equipment slot
type EquippedItem struct {
	Slot       string   `json:"slot"`
	ItemID     int      `json:"item_id"`
	ItemKey    string   `json:"item_key"`
	StatBonus  StatName `json:"stat_bonus,omitempty"`
	BonusValue int      `json:"bonus_value,omitempty"`
}

// Character is the learner's avatar, owned by exactly one user
type Character struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Level           int             `json:"level"`
	Experience      int64           `json:"experience"`
	Stats           Stats           `json:"stats"`
	AvailablePoints int             `json:"available_points"`
	Specialization  *Specialization `json:"specialization,omitempty"`
	Equipment       []EquippedItem  `json:"equipment"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CharacterView is a character with its derived effective stats
type CharacterView struct {
	Character
	EffectiveStats Stats `json:"effective_stats"`
	XPToNextLevel  int64 `json:"xp_to_next_level"`
}

// RespecResult describes the outcome of a respec request.
// Performed is false when the user had no respec token.
type RespecResult struct {
	Performed      bool       `json:"performed"`
	InvestedPoints int        `json:"invested_points"`
	Character      *Character `json:"character,omitempty"`
}

// LevelResult describes an experience award
type LevelResult struct {
	XPGained     int64 `json:"xp_gained"`
	NewXP        int64 `json:"new_xp"`
	OldLevel     int   `json:"old_level"`
	NewLevel     int   `json:"new_level"`
	LeveledUp    bool  `json:"leveled_up"`
	PointsGained int   `json:"points_gained"`
}

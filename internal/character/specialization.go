package character

import "github.com/osse101/QuestAcademy_Go/internal/domain"

var primaryStats = map[domain.Specialization]domain.StatName{
	domain.SpecializationScholar:   domain.StatIntelligence,
	domain.SpecializationGuardian:  domain.StatVitality,
	domain.SpecializationSage:      domain.StatWisdom,
	domain.SpecializationDiplomat:  domain.StatCharisma,
	domain.SpecializationRanger:    domain.StatDexterity,
	domain.SpecializationArtificer: domain.StatCreativity,
}

// PrimaryStat returns the stat a specialization is built around
func PrimaryStat(spec domain.Specialization) (domain.StatName, bool) {
	stat, ok := primaryStats[spec]
	return stat, ok
}

// CanSpecialize reports whether the character may take the specialization
func CanSpecialize(c *domain.Character, spec domain.Specialization) bool {
	if c.Specialization != nil || c.Level < SpecializationMinLevel {
		return false
	}
	primary, ok := PrimaryStat(spec)
	if !ok {
		return false
	}
	return c.Stats.Get(primary) >= SpecializationMinPrimaryStat
}

package world

import "github.com/osse101/QuestAcademy_Go/internal/domain"

// World ids
const (
	WorldNumericalKingdom = "numerical-kingdom"
	WorldWordWizardForest = "word-wizard-forest"
	WorldScienceCitadel   = "science-citadel"
	WorldHistoryHarbor    = "history-harbor"
	WorldArtAtelier       = "art-atelier"
	WorldLogicLabyrinth   = "logic-labyrinth"
)

var catalogue = []domain.World{
	{
		ID:          WorldNumericalKingdom,
		Name:        "Numerical Kingdom",
		Description: "A realm of castles built from equations where every gate opens to the right answer.",
		SubjectID:   "mathematics",
		Theme:       domain.WorldTheme{Color: "#3b82f6", Icon: "crown", Background: "kingdom"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      1,
			RequiredSubjectXP: 0,
		},
	},
	{
		ID:          WorldWordWizardForest,
		Name:        "Word Wizard Forest",
		Description: "Enchanted woods where spells are cast with grammar and vocabulary.",
		SubjectID:   "language-arts",
		Theme:       domain.WorldTheme{Color: "#22c55e", Icon: "wand", Background: "forest"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      3,
			RequiredSubjectXP: 50,
		},
	},
	{
		ID:          WorldScienceCitadel,
		Name:        "Science Citadel",
		Description: "A floating fortress of laboratories and observatories.",
		SubjectID:   "science",
		Theme:       domain.WorldTheme{Color: "#a855f7", Icon: "flask", Background: "citadel"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      4,
			RequiredSubjectXP: 150,
		},
	},
	{
		ID:          WorldHistoryHarbor,
		Name:        "History Harbor",
		Description: "Set sail through the ages from a port full of ancient ships.",
		SubjectID:   "history",
		Theme:       domain.WorldTheme{Color: "#f59e0b", Icon: "anchor", Background: "harbor"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      5,
			RequiredSubjectXP: 200,
		},
	},
	{
		ID:          WorldArtAtelier,
		Name:        "Art Atelier",
		Description: "A sunlit studio where colour and form come to life.",
		SubjectID:   "art",
		Theme:       domain.WorldTheme{Color: "#ec4899", Icon: "palette", Background: "atelier"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      7,
			RequiredSubjectXP: 300,
		},
	},
	{
		ID:          WorldLogicLabyrinth,
		Name:        "Logic Labyrinth",
		Description: "A shifting maze that only the sharpest problem solvers escape.",
		SubjectID:   "mathematics",
		Theme:       domain.WorldTheme{Color: "#6366f1", Icon: "puzzle", Background: "labyrinth"},
		Requirements: domain.UnlockRequirements{
			MinimumLevel:      10,
			RequiredSubjectXP: 1000,
		},
	},
}

// Catalogue returns a copy of the static world catalogue in catalogue order
func Catalogue() []domain.World {
	worlds := make([]domain.World, len(catalogue))
	copy(worlds, catalogue)
	return worlds
}

// FindWorld looks up a catalogue world by id
func FindWorld(worldID string) (domain.World, bool) {
	for _, w := range catalogue {
		if w.ID == worldID {
			return w, true
		}
	}
	return domain.World{}, false
}

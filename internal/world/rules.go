package world

import (
	"math"
	"sort"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// SubjectXP indexes subject progress by subject id. Rows without an id are
// keyed by the slug of their display name.
func SubjectXP(progress []domain.SubjectProgress) map[string]int64 {
	xp := make(map[string]int64, len(progress))
	for _, p := range progress {
		key := p.SubjectID
		if key == "" {
			key = SubjectSlug(p.SubjectName)
		}
		xp[key] += p.TotalXP
	}
	return xp
}

// IsUnlocked reports whether a character of the given level with the given
// subject XP meets a world's unlock requirements.
func IsUnlocked(w domain.World, level int, subjectXP map[string]int64) bool {
	if level < w.Requirements.MinimumLevel {
		return false
	}
	if w.Requirements.RequiredSubjectXP == 0 {
		return true
	}
	return subjectXP[w.SubjectID] >= w.Requirements.RequiredSubjectXP
}

// CompletionPercentage returns round(completed/total*100) clamped to [0, 100].
// A world with no quests is 0% complete.
func CompletionPercentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// BuildViews combines the catalogue with a character's state. The result is
// sorted unlocked first, then by ascending minimum level, then catalogue order.
func BuildViews(worlds []domain.World, level int, subjectXP map[string]int64, progress []domain.WorldProgress) []domain.WorldView {
	byWorld := make(map[string]domain.WorldProgress, len(progress))
	for _, p := range progress {
		byWorld[p.WorldID] = p
	}

	views := make([]domain.WorldView, 0, len(worlds))
	for _, w := range worlds {
		view := domain.WorldView{
			World:      w,
			IsUnlocked: IsUnlocked(w, level, subjectXP),
		}
		if p, ok := byWorld[w.ID]; ok {
			p.CompletionPercentage = CompletionPercentage(p.QuestsCompleted, p.TotalQuests)
			view.Progress = &p
			view.CompletionPercentage = p.CompletionPercentage
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].IsUnlocked != views[j].IsUnlocked {
			return views[i].IsUnlocked
		}
		return views[i].Requirements.MinimumLevel < views[j].Requirements.MinimumLevel
	})
	return views
}

// Recommend picks the next world to visit from a sorted view list:
// the first unlocked world under RecommendCompletionThreshold, else the first
// locked world, else the least complete unlocked world. Empty when there are no worlds.
func Recommend(views []domain.WorldView) string {
	for _, v := range views {
		if v.IsUnlocked && v.CompletionPercentage < RecommendCompletionThreshold {
			return v.ID
		}
	}
	for _, v := range views {
		if !v.IsUnlocked {
			return v.ID
		}
	}

	best := ""
	lowest := math.MaxInt
	for _, v := range views {
		if v.IsUnlocked && v.CompletionPercentage < lowest {
			best = v.ID
			lowest = v.CompletionPercentage
		}
	}
	return best
}

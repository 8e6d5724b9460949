package character

import (
	"math"
	"sort"
)

// levelThresholds[n] is the total XP needed to reach curve level n (character
// level StartingLevel+n). The table ends one past MaxIterationLevel so the
// top level still has a next threshold.
var levelThresholds = buildThresholds(MaxIterationLevel + 1)

// levelCost is the XP paid to go from curve level n-1 to n
func levelCost(n int) int64 {
	return int64(BaseXP * math.Pow(float64(n), LevelExponent))
}

func buildThresholds(top int) []int64 {
	t := make([]int64, top+1)
	for n := 1; n <= top; n++ {
		t[n] = t[n-1] + levelCost(n)
	}
	return t
}

// curveLevel returns the highest curve level paid for by totalXP, capped at MaxIterationLevel
func curveLevel(totalXP int64) int {
	if totalXP <= 0 {
		return 0
	}
	// First threshold above totalXP; the level below it is the one reached
	above := sort.Search(len(levelThresholds), func(n int) bool { return levelThresholds[n] > totalXP })
	return min(above-1, MaxIterationLevel)
}

// CalculateLevel maps total XP to a character level. Curve level n costs
// BaseXP * n^LevelExponent on top of the previous one.
func CalculateLevel(totalXP int64) int {
	return StartingLevel + curveLevel(totalXP)
}

// XPForLevel is the total XP at which a character reaches level
func XPForLevel(level int) int64 {
	n := level - StartingLevel
	switch {
	case n <= 0:
		return 0
	case n < len(levelThresholds):
		return levelThresholds[n]
	}

	total := levelThresholds[len(levelThresholds)-1]
	for i := len(levelThresholds); i <= n; i++ {
		total += levelCost(i)
	}
	return total
}

// XPProgress returns the level for totalXP and how much XP the next level still needs
func XPProgress(totalXP int64) (level int, xpToNext int64) {
	n := curveLevel(totalXP)
	if totalXP < 0 {
		totalXP = 0
	}
	return StartingLevel + n, levelThresholds[n+1] - totalXP
}

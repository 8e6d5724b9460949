package world

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// SubjectSlug derives a subject id from a display name ("Language Arts" -> "language-arts").
// Only used for progress rows written before subjects carried a stable id.
func SubjectSlug(name string) string {
	return strings.Join(strings.Fields(lower.String(name)), "-")
}

package grid

import (
	"slices"

	"github.com/tartampluch/go-almanac/internal/config"
)

// RotateTitles returns the Monday-first titles reordered so that the title of
// ISO weekday weekStart comes first. The input is not modified.
func RotateTitles(titles []string, weekStart int) []string {
	n := (weekStart - 1) % len(titles)
	out := make([]string, 0, len(titles))
	out = append(out, titles[n:]...)
	return append(out, titles[:n]...)
}

func validateTitles(titles []string) error {
	if len(titles) != config.DaysPerWeek {
		return config.Invalid("titles", titles, config.ErrTitlesCount)
	}
	seen := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		if _, dup := seen[t]; dup {
			return config.Invalid("titles", titles, config.ErrTitlesDuplicate)
		}
		seen[t] = struct{}{}
	}
	return nil
}

// column locates the title of an ISO weekday inside the rotated titles.
func column(monday, ordered []string, isoWeekday int) (int, bool) {
	i := slices.Index(ordered, monday[isoWeekday-1])
	return i, i >= 0
}

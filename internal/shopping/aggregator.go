package shopping

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"philcali.me/cookbook/internal/data"
)

// Line is one merged row of a shopping list: every carted entry that
// shares a display name and unit collapses into it.
type Line struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurementUnit"`
	TotalAmount     int    `json:"totalAmount"`
}

type groupKey struct {
	name string
	unit string
}

// Aggregate merges ledger entries by (name, unit) and sums their
// amounts, returning lines sorted by ingredient name ascending. The
// grouping is deliberately by display name rather than catalog id:
// two catalog rows that read the same on a shopping list become one
// line.
func Aggregate(entries []data.ResolvedEntryDTO) []Line {
	totals := make(map[groupKey]int, len(entries))
	for _, entry := range entries {
		totals[groupKey{name: entry.Name, unit: entry.MeasurementUnit}] += entry.Amount
	}
	keys := maps.Keys(totals)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name == keys[j].name {
			return keys[i].unit < keys[j].unit
		}
		return keys[i].name < keys[j].name
	})
	lines := make([]Line, len(keys))
	for i, key := range keys {
		lines[i] = Line{
			Name:            key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     totals[key],
		}
	}
	return lines
}

// Render produces the plain-text download body: a header, a blank
// line, then one numbered row per merged ingredient.
func Render(lines []Line) string {
	var sb strings.Builder
	sb.WriteString("Shopping list:\n\n")
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d) %s - %d %s\n", i+1, line.Name, line.TotalAmount, line.MeasurementUnit)
	}
	return sb.String()
}

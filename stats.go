package img2bead

import (
	"sort"

	"github.com/wbrown/img2bead/palette"
)

// ColorStat records how many beads of one catalog entry a pattern uses.
type ColorStat struct {
	Entry palette.Entry
	Count int
}

// TallyStats counts the distinct entries in a resolved grid and returns
// them sorted by descending count. The grid is scanned in row-major
// order and ties keep first-seen order, so the legend layout is stable
// across runs. Entry identity is the catalog code.
func TallyStats(grid [][]palette.Entry) []ColorStat {
	indexByCode := make(map[string]int)
	var stats []ColorStat

	for _, row := range grid {
		for _, entry := range row {
			if i, seen := indexByCode[entry.Code]; seen {
				stats[i].Count++
				continue
			}
			indexByCode[entry.Code] = len(stats)
			stats = append(stats, ColorStat{Entry: entry, Count: 1})
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

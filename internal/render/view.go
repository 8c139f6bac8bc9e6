package render

import (
	"image/color"

	"github.com/campusbot/schedule-api/internal/catalog"
	"github.com/campusbot/schedule-api/internal/models"
)

// Sentinel bounds for the time-window fold. The earliest accumulator
// starts past any real end of day and the latest before any real start,
// so the first section unconditionally tightens both. An empty schedule
// keeps the sentinels, which the layout tolerates (no hour line falls
// between them and no blocks are drawn).
const (
	defaultEarliestMinute = 1290
	defaultLatestMinute   = 360
)

// Resolver maps enrollment identifiers to catalog sections.
type Resolver interface {
	Resolve(classID, sectionID string) (*catalog.Section, error)
}

// Placement pairs an enrollment record with its resolved section.
type Placement struct {
	Record  models.EnrollmentRecord
	Section *catalog.Section
}

// View is the per-render derived state: the visible time window and the
// stable class color mapping. Built once per render call, then discarded.
type View struct {
	EarliestMinute int
	LatestMinute   int
	Colors         map[string]color.RGBA
}

// BuildView scans the schedule once, resolving every record against the
// catalog, widening the time window and assigning palette colors by first
// appearance of each class. Color assignment is a deterministic function
// of the input iteration order. An unresolvable record aborts with the
// catalog's *ResolutionError.
func BuildView(schedule []models.EnrollmentRecord, resolver Resolver) (*View, []Placement, error) {
	view := &View{
		EarliestMinute: defaultEarliestMinute,
		LatestMinute:   defaultLatestMinute,
		Colors:         make(map[string]color.RGBA),
	}

	placements := make([]Placement, 0, len(schedule))
	used := 0
	for _, record := range schedule {
		section, err := resolver.Resolve(record.ClassID, record.SectionID)
		if err != nil {
			return nil, nil, err
		}

		if section.StartMinute < view.EarliestMinute {
			view.EarliestMinute = section.StartMinute
		}
		if section.EndMinute > view.LatestMinute {
			view.LatestMinute = section.EndMinute
		}
		if _, ok := view.Colors[section.ClassID]; !ok {
			if used < len(palette) {
				view.Colors[section.ClassID] = palette[used]
			} else {
				view.Colors[section.ClassID] = fallbackColor
			}
			used++
		}

		placements = append(placements, Placement{Record: record, Section: section})
	}

	return view, placements, nil
}

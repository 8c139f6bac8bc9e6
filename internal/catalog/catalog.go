package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Section is one meeting pattern of a class: the days, time window, room
// and type a student can enroll in. Minutes count from midnight, campus
// local time. Weekdays are 0 (Monday) through 4 (Friday).
type Section struct {
	ClassID     string
	SectionID   string
	Name        string
	Room        string
	Type        string
	StartMinute int
	EndMinute   int
	Weekdays    []int
}

// ResolutionError reports an enrollment row referencing a (class, section)
// pair the catalog does not know. The upstream validator should have
// rejected the row, so this is a data-integrity failure.
type ResolutionError struct {
	ClassID   string
	SectionID string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("catalog: no section %s-%s", e.ClassID, e.SectionID)
}

// Catalog is the static course table, loaded once at process start and
// read-only afterwards. Safe for concurrent readers.
type Catalog struct {
	sections map[string]*Section
}

func key(classID, sectionID string) string {
	return classID + "\x00" + sectionID
}

// Resolve returns the section for the given identifiers or a *ResolutionError.
func (c *Catalog) Resolve(classID, sectionID string) (*Section, error) {
	if s, ok := c.sections[key(strings.ToUpper(classID), strings.ToUpper(sectionID))]; ok {
		return s, nil
	}
	return nil, &ResolutionError{ClassID: classID, SectionID: sectionID}
}

// Has reports whether the (class, section) pair exists.
func (c *Catalog) Has(classID, sectionID string) bool {
	_, ok := c.sections[key(strings.ToUpper(classID), strings.ToUpper(sectionID))]
	return ok
}

// ClassName returns the display name of a class, or the empty string when
// the class is unknown.
func (c *Catalog) ClassName(classID string) string {
	classID = strings.ToUpper(classID)
	for _, s := range c.sections {
		if s.ClassID == classID {
			return s.Name
		}
	}
	return ""
}

// Len returns the number of catalogued sections.
func (c *Catalog) Len() int {
	return len(c.sections)
}

// File layout of the catalog YAML:
//
//	MA1021:
//	  name: Calculus I
//	  sections:
//	    AL01: {room: SL104, type: Lecture, starts: 540, ends: 590, days: [0, 2, 3, 4]}
type classEntry struct {
	Name     string                  `yaml:"name"`
	Sections map[string]sectionEntry `yaml:"sections"`
}

type sectionEntry struct {
	Room   string `yaml:"room"`
	Type   string `yaml:"type"`
	Starts int    `yaml:"starts"`
	Ends   int    `yaml:"ends"`
	Days   []int  `yaml:"days"`
}

// Load reads and validates the catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse builds a catalog from YAML bytes, validating every section's
// invariants: 0 <= starts < ends < 1440 and a non-empty weekday subset.
func Parse(raw []byte) (*Catalog, error) {
	var classes map[string]classEntry
	if err := yaml.Unmarshal(raw, &classes); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{sections: make(map[string]*Section)}
	for classID, class := range classes {
		classID = strings.ToUpper(classID)
		for sectionID, entry := range class.Sections {
			sectionID = strings.ToUpper(sectionID)
			section := &Section{
				ClassID:     classID,
				SectionID:   sectionID,
				Name:        class.Name,
				Room:        entry.Room,
				Type:        entry.Type,
				StartMinute: entry.Starts,
				EndMinute:   entry.Ends,
				Weekdays:    append([]int(nil), entry.Days...),
			}
			if err := validate(section); err != nil {
				return nil, fmt.Errorf("catalog section %s-%s: %w", classID, sectionID, err)
			}
			sort.Ints(section.Weekdays)
			cat.sections[key(classID, sectionID)] = section
		}
	}
	return cat, nil
}

func validate(s *Section) error {
	if s.StartMinute < 0 || s.EndMinute >= 1440 || s.StartMinute >= s.EndMinute {
		return fmt.Errorf("invalid time window [%d, %d)", s.StartMinute, s.EndMinute)
	}
	if len(s.Weekdays) == 0 {
		return fmt.Errorf("no weekdays")
	}
	for _, d := range s.Weekdays {
		if d < 0 || d > 4 {
			return fmt.Errorf("weekday %d out of range", d)
		}
	}
	return nil
}

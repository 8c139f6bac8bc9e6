package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// ICSEvent is one weekly-recurring calendar entry.
type ICSEvent struct {
	UID         string
	Summary     string
	Location    string
	Description string
	// Weekdays are 0 (Monday) through 4 (Friday).
	Weekdays []int
	// Start/End minutes since midnight, local time.
	StartMinute int
	EndMinute   int
	// FirstDay anchors the recurrence; it should be the Monday of the
	// first week the event occurs in.
	FirstDay time.Time
}

// icsWeekdays maps weekday index 0..4 to the RRULE BYDAY code.
var icsWeekdays = [5]string{"MO", "TU", "WE", "TH", "FR"}

// ICSExporter renders events into an iCalendar byte stream.
type ICSExporter struct {
	ProdID string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{ProdID: "-//campusbot//schedule-api//EN"}
}

// Render produces a VCALENDAR with one weekly VEVENT per input event.
func (e *ICSExporter) Render(events []ICSEvent) []byte {
	buf := &bytes.Buffer{}
	line(buf, "BEGIN:VCALENDAR")
	line(buf, "VERSION:2.0")
	line(buf, "PRODID:"+e.ProdID)

	for _, event := range events {
		if len(event.Weekdays) == 0 {
			continue
		}
		// Anchor DTSTART on the first listed weekday.
		anchor := event.FirstDay.AddDate(0, 0, event.Weekdays[0])
		start := anchor.Add(time.Duration(event.StartMinute) * time.Minute)
		end := anchor.Add(time.Duration(event.EndMinute) * time.Minute)

		days := make([]string, len(event.Weekdays))
		for i, d := range event.Weekdays {
			days[i] = icsWeekdays[d]
		}

		line(buf, "BEGIN:VEVENT")
		line(buf, "UID:"+event.UID)
		line(buf, "DTSTAMP:"+start.UTC().Format("20060102T150405Z"))
		line(buf, "DTSTART:"+start.Format("20060102T150405"))
		line(buf, "DTEND:"+end.Format("20060102T150405"))
		line(buf, "RRULE:FREQ=WEEKLY;BYDAY="+strings.Join(days, ","))
		line(buf, "SUMMARY:"+escape(event.Summary))
		if event.Location != "" {
			line(buf, "LOCATION:"+escape(event.Location))
		}
		if event.Description != "" {
			line(buf, "DESCRIPTION:"+escape(event.Description))
		}
		line(buf, "END:VEVENT")
	}

	line(buf, "END:VCALENDAR")
	return buf.Bytes()
}

func line(buf *bytes.Buffer, s string) {
	fmt.Fprintf(buf, "%s\r\n", s)
}

func escape(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return replacer.Replace(s)
}

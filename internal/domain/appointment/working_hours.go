package appointment

import (
	"fmt"
	"time"
)

// WorkingHours describes the bookable day used to materialize slots.
type WorkingHours struct {
	StartHour       int
	EndHour         int
	LunchStartHour  int
	LunchEndHour    int
	BlockMinutes    int
	MaxAppointments int
}

// DefaultWorkingHours: 08:00–17:00, lunch 12:00–13:00, two cars per hour.
var DefaultWorkingHours = WorkingHours{
	StartHour:       8,
	EndHour:         17,
	LunchStartHour:  12,
	LunchEndHour:    13,
	BlockMinutes:    60,
	MaxAppointments: 2,
}

// SlotBlock is one [Start, End) window, both HH:MM:SS.
type SlotBlock struct {
	Start string
	End   string
}

func (wh WorkingHours) Blocks() []SlotBlock {
	var blocks []SlotBlock

	step := wh.BlockMinutes
	if step <= 0 {
		step = 60
	}

	for m := wh.StartHour * 60; m+step <= wh.EndHour*60; m += step {
		end := m + step
		if m < wh.LunchEndHour*60 && end > wh.LunchStartHour*60 {
			continue
		}
		blocks = append(blocks, SlotBlock{
			Start: clock(m),
			End:   clock(end),
		})
	}
	return blocks
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// IsWorkingDay: the shop is closed on weekends.
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/models"
)

// EvaluateSlot derives the availability of a looked-up slot; slot may be nil.
func EvaluateSlot(slot *models.CalendarSlot) SlotCheck {
	if slot == nil {
		return SlotCheck{
			State:  SlotMissing,
			Reason: "Slot does not exist",
		}
	}

	check := SlotCheck{
		SlotID:         slot.ID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		AvailableSpots: slot.AvailableSpots(),
	}

	switch {
	case !slot.IsAvailable:
		check.State = SlotMarkedDisabled
		check.Reason = "Slot is marked unavailable"
	case slot.CurrentAppointments >= slot.MaxAppointments:
		check.State = SlotFull
		check.Reason = "Slot is full"
	default:
		check.Available = true
		check.State = SlotAvailable
		check.Reason = fmt.Sprintf("%d spot(s) left", check.AvailableSpots)
	}

	return check
}

func ToAvailableSlot(s models.CalendarSlot) AvailableSlot {
	return AvailableSlot{
		ID:                  s.ID,
		Date:                s.Date,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		MaxAppointments:     s.MaxAppointments,
		CurrentAppointments: s.CurrentAppointments,
		AvailableSpots:      s.AvailableSpots(),
	}
}

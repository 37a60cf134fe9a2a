package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlots is the fixed ordered set of bookable intervals per doctor
// per day: morning 10:00-12:00 and evening 16:00-20:30, half-hour
// steps. Availability is always reported in this order.
var TimeSlots = []string{
	"10:00 AM",
	"10:30 AM",
	"11:00 AM",
	"11:30 AM",
	"12:00 PM",
	"04:00 PM",
	"04:30 PM",
	"05:00 PM",
	"05:30 PM",
	"06:00 PM",
	"06:30 PM",
	"07:00 PM",
	"07:30 PM",
	"08:00 PM",
}

// IsValidTimeSlot reports whether the label is one of the fixed slots.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// AvailableSlots filters the fixed slot list down to slots not taken
// by a non-cancelled appointment of the given doctor on the given
// date. Pure function over already-loaded appointments.
func AvailableSlots(appointments []Appointment, doctorID uuid.UUID, date time.Time) []string {
	booked := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		if a.IsCancelled() {
			continue
		}
		if a.DoctorID == doctorID && sameDay(a.Date, date) {
			booked[a.TimeSlot] = true
		}
	}

	available := make([]string, 0, len(TimeSlots))
	for _, slot := range TimeSlots {
		if !booked[slot] {
			available = append(available, slot)
		}
	}
	return available
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

package entity

import "testing"

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"waiting to confirmed", AppointmentStatusWaiting, AppointmentStatusConfirmed, true},
		{"waiting to cancelled", AppointmentStatusWaiting, AppointmentStatusCancelled, true},
		{"waiting to in-progress skips confirmation", AppointmentStatusWaiting, AppointmentStatusInProgress, false},
		{"waiting to completed skips the visit", AppointmentStatusWaiting, AppointmentStatusCompleted, false},
		{"confirmed to in-progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to completed skips the visit", AppointmentStatusConfirmed, AppointmentStatusCompleted, false},
		{"confirmed back to waiting", AppointmentStatusConfirmed, AppointmentStatusWaiting, false},
		{"in-progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in-progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, true},
		{"in-progress back to confirmed", AppointmentStatusInProgress, AppointmentStatusConfirmed, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"cancelled cannot be reopened", AppointmentStatusCancelled, AppointmentStatusWaiting, false},
		{"same non-terminal status is a no-op", AppointmentStatusConfirmed, AppointmentStatusConfirmed, true},
		{"same terminal status is rejected", AppointmentStatusCompleted, AppointmentStatusCompleted, false},
		{"unknown target status", AppointmentStatusWaiting, AppointmentStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	terminal := map[AppointmentStatus]bool{
		AppointmentStatusWaiting:    false,
		AppointmentStatusConfirmed:  false,
		AppointmentStatusInProgress: false,
		AppointmentStatusCompleted:  true,
		AppointmentStatusCancelled:  true,
	}

	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestConsultationEligible(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusWaiting, false},
		{AppointmentStatusConfirmed, true},
		{AppointmentStatusInProgress, true},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.ConsultationEligible(); got != tt.want {
			t.Errorf("ConsultationEligible() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

package entity

import "testing"

func TestRoleMappings(t *testing.T) {
	names := []string{RoleAdmin, RoleDoctor, RoleReceptionist, RolePatient}
	for _, name := range names {
		id := RoleIDFromName(name)
		if id == 0 {
			t.Errorf("RoleIDFromName(%q) = 0", name)
		}
		if back := RoleNameFromID(id); back != name {
			t.Errorf("RoleNameFromID(%d) = %q, want %q", id, back, name)
		}
	}

	if RoleIDFromName("nurse") != 0 {
		t.Error("unknown role name should map to 0")
	}
	if RoleNameFromID(99) != "" {
		t.Error("unknown role id should map to empty name")
	}
}

func TestIsStaff(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleDoctor, RoleReceptionist} {
		if !IsStaff(role) {
			t.Errorf("IsStaff(%q) = false, want true", role)
		}
	}
	if IsStaff(RolePatient) {
		t.Error("IsStaff(patient) = true, want false")
	}
}

package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"", "ADMIN", "DOCTOR", "RECEPTIONIST"} {
		if _, err := ParseRole(valid); err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"SURGEON", "admin", "NURSE"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Fatalf("ParseRole(%q) should have failed", invalid)
		}
	}
}

func TestRoleResolve(t *testing.T) {
	if got := RoleUnspecified.Resolve(); got != RoleAdmin {
		t.Fatalf("unspecified role must resolve to ADMIN, got %s", got)
	}
	if got := RoleDoctor.Resolve(); got != RoleDoctor {
		t.Fatalf("specified role must resolve to itself, got %s", got)
	}
	if !RoleUnspecified.IsAdmin() {
		t.Fatalf("legacy accounts are implicitly administrative")
	}
	if RoleReceptionist.IsAdmin() {
		t.Fatalf("RECEPTIONIST is not administrative")
	}
}

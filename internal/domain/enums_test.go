package domain

import "testing"

func TestCitizenStatus_IsValid(t *testing.T) {
	valid := []CitizenStatus{CitizenStatusAlive, CitizenStatusDead, CitizenStatusFrozen}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []CitizenStatus{"", "alive", "UNKNOWN"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleOfficer, RoleAuditor} {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	for _, r := range []Role{"", "admin", "ROOT"} {
		if r.IsValid() {
			t.Errorf("%q should be invalid", r)
		}
	}
}

func TestCrimeType_IsValid(t *testing.T) {
	if !CrimeTypeAccumulatedCitations.IsValid() {
		t.Error("ACCUMULATED_CITATIONS should be valid")
	}
	if CrimeType("JAYWALKING").IsValid() {
		t.Error("unknown crime type should be invalid")
	}
}

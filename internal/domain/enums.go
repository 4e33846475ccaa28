package domain

// CitizenStatus represents the registry status of a citizen.
type CitizenStatus string

const (
	CitizenStatusAlive  CitizenStatus = "ALIVE"
	CitizenStatusDead   CitizenStatus = "DEAD"
	CitizenStatusFrozen CitizenStatus = "FROZEN"
)

func (s CitizenStatus) String() string { return string(s) }

func (s CitizenStatus) IsValid() bool {
	switch s {
	case CitizenStatusAlive, CitizenStatusDead, CitizenStatusFrozen:
		return true
	}
	return false
}

// Role represents an authenticated user's role. Access to each endpoint is
// gated by a fixed allow-list of roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleOfficer Role = "OFFICER"
	RoleAuditor Role = "AUDITOR"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleAuditor:
		return true
	}
	return false
}

// CrimeType labels the category of a criminal record. Administrative entries
// pick any of the catalog values; records generated by citation escalation
// always carry CrimeTypeAccumulatedCitations.
type CrimeType string

const (
	CrimeTypeTheft                CrimeType = "THEFT"
	CrimeTypeAssault              CrimeType = "ASSAULT"
	CrimeTypeSmuggling            CrimeType = "SMUGGLING"
	CrimeTypeFraud                CrimeType = "FRAUD"
	CrimeTypeAccumulatedCitations CrimeType = "ACCUMULATED_CITATIONS"
	CrimeTypeOther                CrimeType = "OTHER"
)

func (c CrimeType) String() string { return string(c) }

func (c CrimeType) IsValid() bool {
	switch c {
	case CrimeTypeTheft, CrimeTypeAssault, CrimeTypeSmuggling,
		CrimeTypeFraud, CrimeTypeAccumulatedCitations, CrimeTypeOther:
		return true
	}
	return false
}

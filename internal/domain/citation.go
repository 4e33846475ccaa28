package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Credits is a monetary amount in hundredths of a galactic credit.
// Stored as an integer to avoid float drift; rendered with two decimals.
type Credits int64

func (c Credits) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Citation is one minor-infraction event. The fine is always assigned by the
// penalty calculator for the citation's ordinal position, never by a caller.
type Citation struct {
	ID          uuid.UUID
	CitizenID   uuid.UUID
	Description string
	FineAmount  Credits
	IssuedAt    time.Time
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CriminalRecord is a felony-level event. It is created either directly by an
// administrator or automatically when a citation crosses the escalation
// threshold; automatic records carry AutoGenerated=true and a system-built
// description.
type CriminalRecord struct {
	ID            uuid.UUID
	CitizenID     uuid.UUID
	Description   string
	CrimeType     CrimeType
	Location      string
	OccurredAt    time.Time
	AutoGenerated bool
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

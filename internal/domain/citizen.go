package domain

import (
	"time"

	"github.com/google/uuid"
)

// Citizen is an identity registered under the jurisdiction. Citations and
// criminal records reference citizens; the escalation core never mutates one.
type Citizen struct {
	ID                uuid.UUID
	Name              string
	Status            CitizenStatus
	OriginPlanetID    uuid.UUID
	ResidencePlanetID uuid.UUID
	AvatarURL         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Planet is a reference entry for citizen origin and residence.
type Planet struct {
	ID        uuid.UUID
	Name      string
	Code      string // short unique code, e.g. "EARTH"
	CreatedAt time.Time
}

// Package penalty implements the citation penalty ladder.
//
// The ladder maps the ordinal number of a citizen's citation (first, second,
// third, ...) to its sanctions. It is a pure function of the ordinal: no I/O,
// no clock, no randomness. The whole policy lives in the single switch in
// Calculate so an auditor can read it in one place.
package penalty

import (
	"fmt"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Sanction values for the first two tiers.
const (
	baseFine        = domain.Credits(40000) // 400.00 credits
	baseCourseHours = 48
	secondWorkDays  = 2
	thirdJailDays   = 8
)

// Jail-day formula past the third citation: 15 + 5*(n-3) days.
const (
	repeatJailBase = 15
	repeatJailStep = 5
)

// Outcome is the full sanction tuple for one citation. CitationNumber is the
// ordinal (prior count + 1); CreatesCriminalRecord tells the coordinator to
// open a criminal record in the same transaction.
type Outcome struct {
	CitationNumber        int
	FineAmount            domain.Credits
	CourseHours           int
	CommunityWorkDays     int
	JailDays              int
	CreatesCriminalRecord bool
	Description           string
}

// Calculate maps a citizen's prior all-time citation count to the outcome of
// the citation being filed now. priorCount must be the all-time count, never
// a date-windowed one: citations do not expire or reset.
//
// Panics on a negative priorCount. That can only come from a programming
// error, not from user input.
func Calculate(priorCount int) Outcome {
	if priorCount < 0 {
		panic(fmt.Sprintf("penalty: negative prior citation count %d", priorCount))
	}

	n := priorCount + 1

	switch {
	case n == 1:
		return Outcome{
			CitationNumber: n,
			FineAmount:     baseFine,
			CourseHours:    baseCourseHours,
			Description:    "First citation: fine of 400.00 credits and a 48-hour civic responsibility course.",
		}
	case n == 2:
		return Outcome{
			CitationNumber:    n,
			FineAmount:        baseFine,
			CourseHours:       baseCourseHours,
			CommunityWorkDays: secondWorkDays,
			Description:       "Second citation: fine of 400.00 credits, a 48-hour civic responsibility course and 2 days of community work.",
		}
	case n == 3:
		return Outcome{
			CitationNumber:        n,
			JailDays:              thirdJailDays,
			CreatesCriminalRecord: true,
			Description:           "Third citation: 8 days of jail and a criminal record.",
		}
	default:
		days := repeatJailBase + repeatJailStep*(n-3)
		return Outcome{
			CitationNumber:        n,
			JailDays:              days,
			CreatesCriminalRecord: true,
			Description:           fmt.Sprintf("Citation number %d: %d days of jail and a criminal record.", n, days),
		}
	}
}

package penalty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

func TestCalculate_Ladder(t *testing.T) {
	tests := []struct {
		name         string
		priorCount   int
		wantNumber   int
		wantFine     domain.Credits
		wantCourse   int
		wantWorkDays int
		wantJailDays int
		wantRecord   bool
	}{
		{
			name:       "first citation",
			priorCount: 0,
			wantNumber: 1,
			wantFine:   domain.Credits(40000),
			wantCourse: 48,
		},
		{
			name:         "second citation adds community work",
			priorCount:   1,
			wantNumber:   2,
			wantFine:     domain.Credits(40000),
			wantCourse:   48,
			wantWorkDays: 2,
		},
		{
			name:         "third citation jails and opens a record",
			priorCount:   2,
			wantNumber:   3,
			wantJailDays: 8,
			wantRecord:   true,
		},
		{
			name:         "fourth citation starts the linear formula",
			priorCount:   3,
			wantNumber:   4,
			wantJailDays: 20,
			wantRecord:   true,
		},
		{
			name:         "sixth citation",
			priorCount:   5,
			wantNumber:   6,
			wantJailDays: 30,
			wantRecord:   true,
		},
		{
			name:         "tenth citation",
			priorCount:   9,
			wantNumber:   10,
			wantJailDays: 50,
			wantRecord:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.priorCount)

			assert.Equal(t, tt.wantNumber, got.CitationNumber)
			assert.Equal(t, tt.wantFine, got.FineAmount)
			assert.Equal(t, tt.wantCourse, got.CourseHours)
			assert.Equal(t, tt.wantWorkDays, got.CommunityWorkDays)
			assert.Equal(t, tt.wantJailDays, got.JailDays)
			assert.Equal(t, tt.wantRecord, got.CreatesCriminalRecord)
			assert.NotEmpty(t, got.Description)
		})
	}
}

func TestCalculate_FineRendering(t *testing.T) {
	got := Calculate(0)
	assert.Equal(t, "400.00", got.FineAmount.String())
}

func TestCalculate_JailDaysMonotonic(t *testing.T) {
	// Past the record threshold jail time must strictly grow, in steps of 5.
	prev := Calculate(2).JailDays
	for prior := 3; prior <= 50; prior++ {
		cur := Calculate(prior).JailDays
		require.Greater(t, cur, prev, "prior count %d", prior)
		if prior > 3 {
			require.Equal(t, 5, cur-prev, "prior count %d", prior)
		}
		prev = cur
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	for prior := 0; prior < 10; prior++ {
		first := Calculate(prior)
		second := Calculate(prior)
		assert.Equal(t, first, second)
	}
}

func TestCalculate_RepeatDescriptionNamesOrdinal(t *testing.T) {
	got := Calculate(5)
	assert.True(t, strings.Contains(got.Description, "6"), "description %q should name the ordinal", got.Description)
}

func TestCalculate_NegativeCountPanics(t *testing.T) {
	assert.Panics(t, func() { Calculate(-1) })
}

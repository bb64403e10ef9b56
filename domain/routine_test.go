package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	r := &Routine{Date: time.Date(2025, 3, 10, 23, 45, 0, 0, loc)}
	r.NormalizeDate()

	require.Equal(t, time.UTC, r.Date.Location())
	require.Equal(t, 0, r.Date.Hour())
	require.Equal(t, 0, r.Date.Minute())
	// 23:45 UTC-3 is already March 11 in UTC.
	require.Equal(t, 11, r.Date.Day())
}

func TestNormalizeDateDefaultsToToday(t *testing.T) {
	r := &Routine{}
	r.NormalizeDate()
	require.False(t, r.Date.IsZero())
	require.Equal(t, 0, r.Date.Hour())
}

func TestComputeCompletenessEmpty(t *testing.T) {
	r := &Routine{}
	r.ComputeCompleteness()
	require.Zero(t, r.Completeness)
	require.Len(t, r.SectionCompleteness, 4)
}

func TestComputeCompletenessPartial(t *testing.T) {
	r := &Routine{
		BodyCare:  BodyCareSection{Bath: true, SkinCareDay: true, SkinCareNight: true, BodyCream: true},
		Nutrition: NutritionSection{Cook: true, Water: true},
	}
	r.ComputeCompleteness()

	require.InDelta(t, 1.0, r.SectionCompleteness["bodyCare"], 1e-9)
	require.InDelta(t, 0.5, r.SectionCompleteness["nutricion"], 1e-9)
	require.InDelta(t, 0.0, r.SectionCompleteness["ejercicio"], 1e-9)
	require.InDelta(t, 0.375, r.Completeness, 1e-9)
}

func TestComputeCompletenessFull(t *testing.T) {
	r := &Routine{
		BodyCare:  BodyCareSection{true, true, true, true},
		Nutrition: NutritionSection{true, true, true, true},
		Exercise:  ExerciseSection{true, true, true, true},
		Cleaning:  CleaningSection{true, true, true, true},
	}
	r.ComputeCompleteness()
	require.InDelta(t, 1.0, r.Completeness, 1e-9)
}

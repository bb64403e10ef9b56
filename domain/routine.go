package domain

import "time"

// Routine tracks the daily habit checklist. Exactly one routine exists per
// user and UTC day.
type Routine struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"userId"`
	Date                time.Time          `json:"fecha"`
	BodyCare            BodyCareSection    `json:"bodyCare"`
	Nutrition           NutritionSection   `json:"nutricion"`
	Exercise            ExerciseSection    `json:"ejercicio"`
	Cleaning            CleaningSection    `json:"cleaning"`
	Completeness        float64            `json:"completitud"`
	SectionCompleteness map[string]float64 `json:"completitudPorSeccion,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

type BodyCareSection struct {
	Bath          bool `json:"bath"`
	SkinCareDay   bool `json:"skinCareDay"`
	SkinCareNight bool `json:"skinCareNight"`
	BodyCream     bool `json:"bodyCream"`
}

type NutritionSection struct {
	Cook    bool `json:"cocinar"`
	Water   bool `json:"agua"`
	Protein bool `json:"protein"`
	Meds    bool `json:"meds"`
}

type ExerciseSection struct {
	Meditate   bool `json:"meditate"`
	Stretching bool `json:"stretching"`
	Gym        bool `json:"gym"`
	Cardio     bool `json:"cardio"`
}

type CleaningSection struct {
	Bed     bool `json:"bed"`
	Dishes  bool `json:"platos"`
	Floor   bool `json:"piso"`
	Laundry bool `json:"ropa"`
}

// NormalizeDate truncates the routine date to UTC midnight so the per-day
// uniqueness constraint holds regardless of the client timezone.
func (r *Routine) NormalizeDate() {
	if r == nil {
		return
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	y, m, d := r.Date.UTC().Date()
	r.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeCompleteness recalculates the per-section and overall completion
// ratios from the boolean checklist.
func (r *Routine) ComputeCompleteness() {
	if r == nil {
		return
	}
	sections := map[string]float64{
		"bodyCare":  ratio(r.BodyCare.Bath, r.BodyCare.SkinCareDay, r.BodyCare.SkinCareNight, r.BodyCare.BodyCream),
		"nutricion": ratio(r.Nutrition.Cook, r.Nutrition.Water, r.Nutrition.Protein, r.Nutrition.Meds),
		"ejercicio": ratio(r.Exercise.Meditate, r.Exercise.Stretching, r.Exercise.Gym, r.Exercise.Cardio),
		"cleaning":  ratio(r.Cleaning.Bed, r.Cleaning.Dishes, r.Cleaning.Floor, r.Cleaning.Laundry),
	}

	var total float64
	for _, v := range sections {
		total += v
	}
	r.SectionCompleteness = sections
	r.Completeness = total / float64(len(sections))
}

func ratio(checks ...bool) float64 {
	if len(checks) == 0 {
		return 0
	}
	var done int
	for _, c := range checks {
		if c {
			done++
		}
	}
	return float64(done) / float64(len(checks))
}

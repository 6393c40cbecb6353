package assessment

import (
	"fmt"
	"math"
)

// Encode maps a record to the feature vector the classifier was trained on.
// The order is fixed; see FeatureNames.
func Encode(r Record) ([]float64, error) {
	features := make([]float64, 0, FeatureCount)

	edu, ok := r.ParentalEducation.Code()
	if !ok {
		return nil, &FieldError{Field: FieldParentalEducation, Value: int(r.ParentalEducation), Reason: "not a known education level"}
	}
	features = append(features, float64(edu))

	answers := []struct {
		name  string
		value Answer
	}{
		{FieldAccessHealthcare, r.AccessHealthcare},
		{FieldCleanWater, r.CleanWater},
		{FieldSanitation, r.Sanitation},
		{FieldFoodAvailability, r.FoodAvailability},
		{FieldSeasonalVariation, r.SeasonalVariation},
		{FieldMarketAccess, r.MarketAccess},
	}
	for _, a := range answers {
		code, ok := a.value.Code()
		if !ok {
			return nil, &FieldError{Field: a.name, Value: int(a.value), Reason: "expected No or Yes"}
		}
		features = append(features, float64(code))
	}

	zScores := []struct {
		name  string
		value float64
	}{
		{FieldWeightForAge, r.WeightForAge},
		{FieldHeightForAge, r.HeightForAge},
		{FieldWeightForHeight, r.WeightForHeight},
	}
	for _, z := range zScores {
		if math.IsNaN(z.value) || math.IsInf(z.value, 0) || z.value < ZScoreMin || z.value > ZScoreMax {
			return nil, &FieldError{Field: z.name, Value: z.value, Reason: fmt.Sprintf("must be within [%.1f, %.1f]", ZScoreMin, ZScoreMax)}
		}
		features = append(features, z.value)
	}

	if r.DietaryDiversity < DiversityMin || r.DietaryDiversity > DiversityMax {
		return nil, &FieldError{Field: FieldDietaryDiversity, Value: r.DietaryDiversity, Reason: fmt.Sprintf("must be within [%d, %d]", DiversityMin, DiversityMax)}
	}
	if r.MealFrequency < FrequencyMin || r.MealFrequency > FrequencyMax {
		return nil, &FieldError{Field: FieldMealFrequency, Value: r.MealFrequency, Reason: fmt.Sprintf("must be within [%d, %d]", FrequencyMin, FrequencyMax)}
	}
	features = append(features, float64(r.DietaryDiversity), float64(r.MealFrequency))

	return features, nil
}

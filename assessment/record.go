// Package assessment holds the malnutrition risk input record, its fixed
// numeric encoding and the mapping from classifier output back to a risk label.
package assessment

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Education is the ordinal parental education level.
type Education int

const (
	NoEducation Education = iota
	Primary
	Secondary
	Tertiary
)

var educationLabels = []string{"No Education", "Primary", "Secondary", "Tertiary"}

// EducationLabels returns the accepted education labels in code order.
func EducationLabels() []string {
	return append([]string(nil), educationLabels...)
}

// Code maps the level to its trained integer code.
func (e Education) Code() (int, bool) {
	switch e {
	case NoEducation:
		return 0, true
	case Primary:
		return 1, true
	case Secondary:
		return 2, true
	case Tertiary:
		return 3, true
	default:
		return 0, false
	}
}

func (e Education) String() string {
	if code, ok := e.Code(); ok {
		return educationLabels[code]
	}
	return "Education(" + strconv.Itoa(int(e)) + ")"
}

func (e Education) MarshalText() ([]byte, error) {
	if _, ok := e.Code(); !ok {
		return nil, &FieldError{Field: FieldParentalEducation, Value: int(e), Reason: "not a known education level"}
	}
	return []byte(e.String()), nil
}

func (e *Education) UnmarshalText(text []byte) error {
	parsed, err := ParseEducation(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEducation accepts a form label, ignoring case and surrounding space.
func ParseEducation(s string) (Education, error) {
	if idx, ok := matchLabel(s, educationLabels); ok {
		return Education(idx), nil
	}
	return 0, &FieldError{
		Field:  FieldParentalEducation,
		Value:  s,
		Reason: "expected one of " + strings.Join(educationLabels, ", "),
	}
}

// Answer is a No/Yes form answer.
type Answer int

const (
	No Answer = iota
	Yes
)

var answerLabels = []string{"No", "Yes"}

// AnswerLabels returns the accepted answers in code order.
func AnswerLabels() []string {
	return append([]string(nil), answerLabels...)
}

// Code maps the answer to its trained integer code.
func (a Answer) Code() (int, bool) {
	switch a {
	case No:
		return 0, true
	case Yes:
		return 1, true
	default:
		return 0, false
	}
}

func (a Answer) String() string {
	if code, ok := a.Code(); ok {
		return answerLabels[code]
	}
	return "Answer(" + strconv.Itoa(int(a)) + ")"
}

func (a Answer) MarshalText() ([]byte, error) {
	if _, ok := a.Code(); !ok {
		return nil, &FieldError{Field: "answer", Value: int(a), Reason: "not a known answer"}
	}
	return []byte(a.String()), nil
}

func (a *Answer) UnmarshalText(text []byte) error {
	parsed, err := ParseAnswer(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAnswer accepts "No" or "Yes", ignoring case and surrounding space.
func ParseAnswer(s string) (Answer, error) {
	if idx, ok := matchLabel(s, answerLabels); ok {
		return Answer(idx), nil
	}
	return 0, &FieldError{Field: "answer", Value: s, Reason: "expected one of No, Yes"}
}

func matchLabel(s string, labels []string) (int, bool) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	for i, label := range labels {
		if folded == cases.Fold().String(label) {
			return i, true
		}
	}
	return 0, false
}

// Record is one filled-in assessment form.
type Record struct {
	ParentalEducation Education `json:"parental_education"`
	AccessHealthcare  Answer    `json:"access_healthcare"`
	CleanWater        Answer    `json:"clean_water"`
	Sanitation        Answer    `json:"sanitation"`
	FoodAvailability  Answer    `json:"food_availability"`
	SeasonalVariation Answer    `json:"seasonal_variation"`
	MarketAccess      Answer    `json:"market_access"`
	WeightForAge      float64   `json:"weight_for_age"`
	HeightForAge      float64   `json:"height_for_age"`
	WeightForHeight   float64   `json:"weight_for_height"`
	DietaryDiversity  int       `json:"dietary_diversity"`
	MealFrequency     int       `json:"meal_frequency"`
}

// DefaultRecord returns the record a form shows before the user touches it.
func DefaultRecord() Record {
	return Record{
		ParentalEducation: NoEducation,
		WeightForAge:      ZScoreMin,
		HeightForAge:      ZScoreMin,
		WeightForHeight:   ZScoreMin,
		DietaryDiversity:  5,
		MealFrequency:     3,
	}
}

// Validate reports the first field outside its domain.
func (r Record) Validate() error {
	_, err := Encode(r)
	return err
}

// Set assigns a field by its wire name from its textual form.
func (r *Record) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldParentalEducation:
		e, err := ParseEducation(value)
		if err != nil {
			return err
		}
		r.ParentalEducation = e
		return nil
	case FieldAccessHealthcare, FieldCleanWater, FieldSanitation,
		FieldFoodAvailability, FieldSeasonalVariation, FieldMarketAccess:
		a, err := ParseAnswer(value)
		if err != nil {
			return &FieldError{Field: field, Value: value, Reason: "expected one of No, Yes"}
		}
		*r.answer(field) = a
		return nil
	case FieldWeightForAge, FieldHeightForAge, FieldWeightForHeight:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &FieldError{Field: field, Value: value, Reason: "not a number"}
		}
		*r.zScore(field) = f
		return nil
	case FieldDietaryDiversity, FieldMealFrequency:
		n, err := strconv.Atoi(value)
		if err != nil {
			return &FieldError{Field: field, Value: value, Reason: "not an integer"}
		}
		if field == FieldDietaryDiversity {
			r.DietaryDiversity = n
		} else {
			r.MealFrequency = n
		}
		return nil
	default:
		return &FieldError{Field: field, Value: value, Reason: "unknown field"}
	}
}

func (r *Record) answer(field string) *Answer {
	switch field {
	case FieldAccessHealthcare:
		return &r.AccessHealthcare
	case FieldCleanWater:
		return &r.CleanWater
	case FieldSanitation:
		return &r.Sanitation
	case FieldFoodAvailability:
		return &r.FoodAvailability
	case FieldSeasonalVariation:
		return &r.SeasonalVariation
	case FieldMarketAccess:
		return &r.MarketAccess
	}
	panic(fmt.Sprintf("assessment: %s is not a yes/no field", field))
}

func (r *Record) zScore(field string) *float64 {
	switch field {
	case FieldWeightForAge:
		return &r.WeightForAge
	case FieldHeightForAge:
		return &r.HeightForAge
	case FieldWeightForHeight:
		return &r.WeightForHeight
	}
	panic(fmt.Sprintf("assessment: %s is not a z-score field", field))
}

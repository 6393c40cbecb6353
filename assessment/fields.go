package assessment

// Wire names of the record fields, in feature order.
const (
	FieldParentalEducation = "parental_education"
	FieldAccessHealthcare  = "access_healthcare"
	FieldCleanWater        = "clean_water"
	FieldSanitation        = "sanitation"
	FieldFoodAvailability  = "food_availability"
	FieldSeasonalVariation = "seasonal_variation"
	FieldMarketAccess      = "market_access"
	FieldWeightForAge      = "weight_for_age"
	FieldHeightForAge      = "height_for_age"
	FieldWeightForHeight   = "weight_for_height"
	FieldDietaryDiversity  = "dietary_diversity"
	FieldMealFrequency     = "meal_frequency"
)

// FeatureCount is the length of every encoded feature vector.
const FeatureCount = 12

const (
	ZScoreMin    = -5.0
	ZScoreMax    = 5.0
	ZScoreStep   = 0.1
	DiversityMin = 0
	DiversityMax = 10
	FrequencyMin = 1
	FrequencyMax = 5
)

const (
	SectionHousehold = "Household & Environment Information"
	SectionChild     = "Child Nutrition Metrics"
)

// Widget names the form control a collecting interface should render.
type Widget string

const (
	WidgetSelect Widget = "select"
	WidgetRadio  Widget = "radio"
	WidgetNumber Widget = "number"
	WidgetSlider Widget = "slider"
)

// Bounds is the inclusive numeric range of a field.
type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Field describes one form input. Fields() returns them in feature order.
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Section string   `json:"section"`
	Widget  Widget   `json:"widget"`
	Options []string `json:"options,omitempty"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
	Default any      `json:"default"`
}

// Integer reports whether the field takes whole numbers.
func (f Field) Integer() bool {
	return f.Widget == WidgetSlider
}

func Fields() []Field {
	zScore := func(name, label string) Field {
		return Field{
			Name:    name,
			Label:   label,
			Section: SectionChild,
			Widget:  WidgetNumber,
			Bounds:  &Bounds{Min: ZScoreMin, Max: ZScoreMax, Step: ZScoreStep},
			Default: ZScoreMin,
		}
	}
	radio := func(name, label string) Field {
		return Field{
			Name:    name,
			Label:   label,
			Section: SectionHousehold,
			Widget:  WidgetRadio,
			Options: AnswerLabels(),
			Default: No.String(),
		}
	}
	return []Field{
		{
			Name:    FieldParentalEducation,
			Label:   "Parental Education",
			Section: SectionHousehold,
			Widget:  WidgetSelect,
			Options: EducationLabels(),
			Default: NoEducation.String(),
		},
		radio(FieldAccessHealthcare, "Access to Healthcare"),
		radio(FieldCleanWater, "Access to Clean Water"),
		radio(FieldSanitation, "Sanitation Facilities"),
		radio(FieldFoodAvailability, "Availability of Food"),
		radio(FieldSeasonalVariation, "Seasonal Variations"),
		radio(FieldMarketAccess, "Market Access"),
		zScore(FieldWeightForAge, "Weight-for-Age"),
		zScore(FieldHeightForAge, "Height-for-Age"),
		zScore(FieldWeightForHeight, "Weight-for-Height"),
		{
			Name:    FieldDietaryDiversity,
			Label:   "Dietary Diversity (0-10)",
			Section: SectionChild,
			Widget:  WidgetSlider,
			Bounds:  &Bounds{Min: DiversityMin, Max: DiversityMax, Step: 1},
			Default: 5,
		},
		{
			Name:    FieldMealFrequency,
			Label:   "Frequency of Meals per Day",
			Section: SectionChild,
			Widget:  WidgetSlider,
			Bounds:  &Bounds{Min: FrequencyMin, Max: FrequencyMax, Step: 1},
			Default: 3,
		},
	}
}

// FeatureNames returns the field names in the order Encode emits them.
func FeatureNames() []string {
	return []string{
		FieldParentalEducation,
		FieldAccessHealthcare,
		FieldCleanWater,
		FieldSanitation,
		FieldFoodAvailability,
		FieldSeasonalVariation,
		FieldMarketAccess,
		FieldWeightForAge,
		FieldHeightForAge,
		FieldWeightForHeight,
		FieldDietaryDiversity,
		FieldMealFrequency,
	}
}

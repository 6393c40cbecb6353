package assessment

// Risk is the user-facing malnutrition risk label.
type Risk string

const (
	RiskHigh     Risk = "High"
	RiskLow      Risk = "Low"
	RiskModerate Risk = "Moderate"
)

// Decode maps a classifier class index to its risk label.
func Decode(class int) (Risk, error) {
	switch class {
	case 0:
		return RiskHigh, nil
	case 1:
		return RiskLow, nil
	case 2:
		return RiskModerate, nil
	default:
		return "", &ClassError{Class: class}
	}
}

// Risks returns every label in class index order.
func Risks() []Risk {
	return []Risk{RiskHigh, RiskLow, RiskModerate}
}

// Color is the display color name.
func (r Risk) Color() string {
	switch r {
	case RiskHigh:
		return "red"
	case RiskModerate:
		return "orange"
	case RiskLow:
		return "green"
	default:
		return ""
	}
}

// Hex is the terminal rendering of Color.
func (r Risk) Hex() string {
	switch r {
	case RiskHigh:
		return "#FF0000"
	case RiskModerate:
		return "#FFA500"
	case RiskLow:
		return "#008000"
	default:
		return ""
	}
}

// Severity ranks labels from least (1) to most (3) severe; 0 for unknown.
func (r Risk) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskModerate:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Message is the sentence shown next to the label.
func (r Risk) Message() string {
	return "Predicted Malnutrition Risk: " + string(r)
}

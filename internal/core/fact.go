package core

// FactKey names one of the "best X" statistics derived from a frequency matrix.
type FactKey string

const (
	FactMostActiveDay   FactKey = "most-active-day"
	FactMostActiveMonth FactKey = "most-active-month"
	FactPeakHour        FactKey = "peak-hour"
	FactMostActiveWeek  FactKey = "most-active-week"
)

var ValidFacts = []FactKey{
	FactMostActiveDay,
	FactMostActiveMonth,
	FactPeakHour,
	FactMostActiveWeek,
}

func (f FactKey) Label() string {
	switch f {
	case FactMostActiveDay:
		return "Most Active Day"
	case FactMostActiveMonth:
		return "Most Active Month"
	case FactPeakHour:
		return "Peak Hour"
	case FactMostActiveWeek:
		return "Most Active Week"
	default:
		return string(f)
	}
}

func ParseFactKey(s string) (FactKey, bool) {
	for _, f := range ValidFacts {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// NextFact cycles "" -> day -> month -> hour -> week -> "".
func NextFact(current FactKey) FactKey {
	if current == "" {
		return ValidFacts[0]
	}
	for i, f := range ValidFacts {
		if f == current {
			if i+1 < len(ValidFacts) {
				return ValidFacts[i+1]
			}
			return ""
		}
	}
	return ""
}

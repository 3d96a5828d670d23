package entity

// RiskBand is one of four ordered severity classes.
type RiskBand string

const (
	BandLow      RiskBand = "low"
	BandMedium   RiskBand = "medium"
	BandHigh     RiskBand = "high"
	BandCritical RiskBand = "critical"
)

// Textual risk levels as reported by the analysis service.
const (
	RiskLevelLow      = "Low Risk"
	RiskLevelMedium   = "Medium Risk"
	RiskLevelHigh     = "High Risk"
	RiskLevelVeryHigh = "Very High Risk"
)

const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// Classification is the display weight of a score. Text and background
// classes always come from the same band.
type Classification struct {
	Band       RiskBand `json:"band"`
	Color      string   `json:"color"`
	ColorClass string   `json:"color_class"`
	BgClass    string   `json:"bg_class"`
}

type bandRule struct {
	minScore       int
	classification Classification
	level          string
}

// Evaluated high to low, first match wins.
var bandRules = []bandRule{
	{80, Classification{BandLow, "green", "text-green-600", "bg-green-100 border-green-300"}, RiskLevelLow},
	{60, Classification{BandMedium, "yellow", "text-yellow-600", "bg-yellow-100 border-yellow-300"}, RiskLevelMedium},
	{40, Classification{BandHigh, "orange", "text-orange-600", "bg-orange-100 border-orange-300"}, RiskLevelHigh},
	{MinRiskScore, Classification{BandCritical, "red", "text-red-600", "bg-red-100 border-red-300"}, RiskLevelVeryHigh},
}

// ClampScore bounds a producer-supplied score to [0,100].
func ClampScore(score int) int {
	if score < MinRiskScore {
		return MinRiskScore
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	return score
}

func ruleFor(score int) bandRule {
	score = ClampScore(score)
	for _, r := range bandRules {
		if score >= r.minScore {
			return r
		}
	}
	return bandRules[len(bandRules)-1]
}

// Classify maps a risk score to its band. Out-of-range scores are clamped.
func Classify(score int) Classification {
	return ruleFor(score).classification
}

// RiskLevelFor returns the textual level matching the score's band.
func RiskLevelFor(score int) string {
	return ruleFor(score).level
}

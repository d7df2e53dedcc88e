package domain

// RiskLevel is a coarse severity classification derived from density.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Density thresholds in square meters per person. Lower density per person
// means higher risk.
const (
	DensityLowThreshold    = 2.5
	DensityMediumThreshold = 1.5
	DensityHighThreshold   = 1.2
)

// ClassifyDensity maps square meters per person to a risk level. A
// non-positive density only occurs for a fully emptied zone and reads as low.
func ClassifyDensity(sqmPerPerson float64) RiskLevel {
	switch {
	case sqmPerPerson <= 0:
		return RiskLow
	case sqmPerPerson >= DensityLowThreshold:
		return RiskLow
	case sqmPerPerson >= DensityMediumThreshold:
		return RiskMedium
	case sqmPerPerson >= DensityHighThreshold:
		return RiskHigh
	default:
		return RiskCritical
	}
}

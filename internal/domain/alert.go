package domain

// AlertType identifies an externally triggered venue alert.
type AlertType string

const (
	AlertOvercrowding     AlertType = "Overcrowding"
	AlertMedicalEmergency AlertType = "MedicalEmergency"
	AlertFire             AlertType = "Fire"
	AlertSecurityThreat   AlertType = "SecurityThreat"
	AlertStampede         AlertType = "Stampede"
)

// AlertTypes lists the recognized alert kinds in wire order.
var AlertTypes = []AlertType{
	AlertOvercrowding,
	AlertMedicalEmergency,
	AlertFire,
	AlertSecurityThreat,
	AlertStampede,
}

// ValidAlertType reports whether t is one of the recognized alert kinds.
func ValidAlertType(t AlertType) bool {
	for _, known := range AlertTypes {
		if t == known {
			return true
		}
	}
	return false
}

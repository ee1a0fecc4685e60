package posture

import (
	"fmt"
	"math"
)

// recommendations maps (kind, severity) to a user-facing message. Abnormal
// templates embed the measured angle rounded to whole degrees.
var recommendations = map[CheckKind]map[Severity]string{
	ForwardHead: {
		SeverityNormal:   "Head alignment looks good. Keep your screen at or near eye level.",
		SeverityMild:     "Mild forward head posture (CVA %.0f°). Try gentle chin tucks and raise your screen height.",
		SeverityModerate: "Pronounced forward head posture (CVA %.0f°). Regular chin-tuck exercises and a workstation review are recommended.",
	},
	RoundedShoulders: {
		SeverityNormal:   "Shoulder alignment looks good. Keep your shoulder blades relaxed and back.",
		SeverityMild:     "Mildly rounded shoulders (%.0f°). Add doorway chest stretches and row exercises to your routine.",
		SeverityModerate: "Significantly rounded shoulders (%.0f°). Daily chest stretching and upper-back strengthening are recommended.",
	},
	BackSlouch: {
		SeverityNormal:   "Spinal alignment looks good. Keep your back supported while seated.",
		SeverityMild:     "Mild slouching detected (%.0f° deviation). Sit tall with lumbar support and take standing breaks.",
		SeverityModerate: "Significant slouching detected (%.0f° deviation). Core strengthening and frequent posture breaks are recommended.",
	},
}

// recommendationFor renders the message for a classified angle.
func recommendationFor(kind CheckKind, severity Severity, angle float64) string {
	template := recommendations[kind][severity]
	if severity == SeverityNormal {
		return template
	}
	return fmt.Sprintf(template, math.Round(angle))
}

package cv

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var positionLabels = map[string]string{
	"GB":       "GARDIEN DE BUT",
	"DG":       "DÉFENSEUR GAUCHE",
	"DC":       "DÉFENSEUR CENTRAL",
	"DD":       "DÉFENSEUR DROIT",
	"MDC":      "MILIEU DÉFENSIF",
	"MC":       "MILIEU CENTRAL",
	"MOC":      "MILIEU OFFENSIF",
	"AG":       "AILIER GAUCHE",
	"AD":       "AILIER DROIT",
	"BU":       "BUTEUR",
	"Piston G": "PISTON GAUCHE",
	"Piston D": "PISTON DROIT",
}

// PositionLabel expands a position code. Unknown codes are uppercased.
func PositionLabel(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := positionLabels[code]; ok {
		return label
	}
	return upperFR(code)
}

// upperFR uppercases with French rules. Casers hold state, so one is built per call.
func upperFR(s string) string {
	return cases.Upper(language.French).String(s)
}

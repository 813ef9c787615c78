package cv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	white = RGB{255, 255, 255}
	black = RGB{0, 0, 0}
)

const (
	placeholderGlyph = "🏳"
	englandGlyph     = "\U0001F3F4\U000E0067\U000E0062\U000E0065\U000E006E\U000E0067\U000E007F"
)

type flagSpec struct {
	name    string
	iso     string
	pattern FlagPattern
	bands   []RGB
}

var flagSpecs = []flagSpec{
	{"France", "FR", PatternVertical, []RGB{{0, 35, 149}, white, {237, 41, 57}}},
	{"Belgique", "BE", PatternVertical, []RGB{black, {253, 218, 36}, {239, 51, 64}}},
	{"Italie", "IT", PatternVertical, []RGB{{0, 146, 70}, white, {206, 43, 55}}},
	{"Allemagne", "DE", PatternHorizontal, []RGB{black, {221, 0, 0}, {255, 206, 0}}},
	{"Espagne", "ES", PatternHorizontal, []RGB{{170, 21, 27}, {241, 191, 0}, {241, 191, 0}, {170, 21, 27}}},
	{"Portugal", "PT", PatternVertical, []RGB{{0, 102, 0}, {255, 0, 0}, {255, 0, 0}}},
	{"Maroc", "MA", PatternSolid, []RGB{{193, 39, 45}}},
	{"Algérie", "DZ", PatternVertical, []RGB{{0, 98, 51}, white}},
	{"Tunisie", "TN", PatternSolid, []RGB{{231, 0, 19}}},
	{"Sénégal", "SN", PatternVertical, []RGB{{0, 133, 63}, {253, 239, 66}, {227, 27, 35}}},
	{"Côte d'Ivoire", "CI", PatternVertical, []RGB{{247, 127, 0}, white, {0, 158, 96}}},
	{"Cameroun", "CM", PatternVertical, []RGB{{0, 122, 94}, {206, 17, 38}, {252, 209, 22}}},
	{"Mali", "ML", PatternVertical, []RGB{{20, 181, 58}, {252, 209, 22}, {206, 17, 38}}},
	{"Suisse", "CH", PatternCross, []RGB{{255, 0, 0}, white}},
	{"Angleterre", "", PatternCross, []RGB{white, {206, 17, 36}}},
	{"Pays-Bas", "NL", PatternHorizontal, []RGB{{174, 28, 40}, white, {33, 70, 139}}},
}

var flagIndex = func() map[string]flagSpec {
	m := make(map[string]flagSpec, len(flagSpecs))
	for _, f := range flagSpecs {
		m[foldKey(f.name)] = f
	}
	return m
}()

// FlagFor returns the flag of a country name. Lookup ignores case and accents;
// unknown countries get a grey placeholder.
func FlagFor(country string) Flag {
	country = strings.TrimSpace(country)
	entry, ok := flagIndex[foldKey(country)]
	if !ok {
		return Flag{
			Country: country,
			Glyph:   placeholderGlyph,
			Pattern: PatternSolid,
			Bands:   []RGB{{200, 200, 200}},
		}
	}
	glyph := englandGlyph
	if entry.iso != "" {
		glyph = regionalIndicators(entry.iso)
	}
	return Flag{
		Country: entry.name,
		Glyph:   glyph,
		Pattern: entry.pattern,
		Bands:   entry.bands,
		Known:   true,
	}
}

func regionalIndicators(iso string) string {
	var b strings.Builder
	for _, r := range iso {
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

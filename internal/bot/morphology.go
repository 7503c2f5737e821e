package bot

import (
	"strings"

	"placesbot/internal/model"
)

// PlaceForms are the count forms of "место" used in result summaries
var PlaceForms = model.DeclensionForms{One: "место", Few: "места", Many: "мест"}

// pluralTypes maps common place-type nouns to their plural form. "кафе" is
// indeclinable and maps to itself.
var pluralTypes = map[string]string{
	"парк":                  "парки",
	"музей":                 "музеи",
	"кафе":                  "кафе",
	"ресторан":              "рестораны",
	"отель":                 "отели",
	"театр":                 "театры",
	"магазин":               "магазины",
	"бар":                   "бары",
	"кинотеатр":             "кинотеатры",
	"достопримечательность": "достопримечательности",
}

// Declension picks the noun form that agrees with count in Russian:
// 1 место, 2 места, 5 мест, 11 мест, 21 место.
func Declension(count int, forms model.DeclensionForms) string {
	if count < 0 {
		count = -count
	}
	if n := count % 100; n >= 5 && n <= 20 {
		return forms.Many
	}
	switch count % 10 {
	case 1:
		return forms.One
	case 2, 3, 4:
		return forms.Few
	default:
		return forms.Many
	}
}

// PluralizeType returns the plural of a place-type noun. Known nouns come
// from the lookup table; anything else goes through suffix substitution.
func PluralizeType(placeType string) string {
	t := strings.ToLower(strings.TrimSpace(placeType))
	if plural, ok := pluralTypes[t]; ok {
		return plural
	}
	switch {
	case strings.HasSuffix(t, "а"):
		return strings.TrimSuffix(t, "а") + "ы"
	case strings.HasSuffix(t, "й"):
		return strings.TrimSuffix(t, "й") + "и"
	case strings.HasSuffix(t, "ь"):
		return strings.TrimSuffix(t, "ь") + "и"
	case strings.HasSuffix(t, "я"):
		return strings.TrimSuffix(t, "я") + "и"
	default:
		return t + "ы"
	}
}

package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"placesbot/internal/model"
)

func TestDeclension(t *testing.T) {
	forms := model.DeclensionForms{One: "место", Few: "места", Many: "мест"}

	tests := []struct {
		count int
		want  string
	}{
		{1, "место"},
		{2, "места"},
		{3, "места"},
		{4, "места"},
		{5, "мест"},
		{10, "мест"},
		{11, "мест"},
		{12, "мест"},
		{19, "мест"},
		{20, "мест"},
		{21, "место"},
		{22, "места"},
		{25, "мест"},
		{100, "мест"},
		{101, "место"},
		{104, "места"},
		{111, "мест"},
		{0, "мест"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Declension(tt.count, forms), "count %d", tt.count)
	}
}

func TestPluralizeType(t *testing.T) {
	tests := []struct {
		placeType string
		want      string
	}{
		// lookup table
		{"парк", "парки"},
		{"музей", "музеи"},
		{"кафе", "кафе"},
		{"ресторан", "рестораны"},
		{"театр", "театры"},
		{"достопримечательность", "достопримечательности"},
		// suffix fallback
		{"пицца", "пиццы"},
		{"бассейн", "бассейны"},
		{"пекарня", "пекарни"},
		{"площадь", "площади"},
		// input is normalized first
		{"  Парк ", "парки"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeType(tt.placeType), "type %q", tt.placeType)
	}
}

func TestPluralizeTypeIsDeterministic(t *testing.T) {
	assert.Equal(t, PluralizeType("кофейня"), PluralizeType("кофейня"))
}

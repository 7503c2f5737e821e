package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placesbot/internal/model"
)

// fakePlaces is a PlaceSource whose behavior is set per test
type fakePlaces struct {
	byKeyword func(query string, limit int) ([]model.Place, error)
	byType    func(placeType string, limit int) ([]model.Place, error)
	popular   func(limit int) ([]model.Place, error)
}

func (f *fakePlaces) FindByKeyword(_ context.Context, query string, limit int) ([]model.Place, error) {
	return f.byKeyword(query, limit)
}

func (f *fakePlaces) FindByType(_ context.Context, placeType string, limit int) ([]model.Place, error) {
	return f.byType(placeType, limit)
}

func (f *fakePlaces) FindPopular(_ context.Context, limit int) ([]model.Place, error) {
	return f.popular(limit)
}

// fixedPicker always selects the same fallback reply
type fixedPicker struct{ index int }

func (p fixedPicker) Pick(n int) int { return p.index % n }

func somePlaces(n int) []model.Place {
	places := make([]model.Place, n)
	for i := range places {
		places[i] = model.Place{ID: string(rune('a' + i)), Name: "Место"}
	}
	return places
}

func newTestResponder(places PlaceSource) *Responder {
	return NewResponder(places, fixedPicker{}, 10, time.Second)
}

func TestRespondFixedReplies(t *testing.T) {
	r := newTestResponder(&fakePlaces{})

	tests := []struct {
		kind model.IntentKind
		want string
	}{
		{model.IntentGreeting, greetingReply},
		{model.IntentHelp, helpReply},
		{model.IntentThanks, thanksReply},
		{model.IntentFarewell, farewellReply},
	}

	for _, tt := range tests {
		text, places := r.Respond(context.Background(), model.Intent{Kind: tt.kind})
		assert.Equal(t, tt.want, text)
		assert.Empty(t, places)
	}
}

func TestRespondTypeQuery(t *testing.T) {
	t.Run("several results", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			byType: func(placeType string, limit int) ([]model.Place, error) {
				assert.Equal(t, "музей", placeType)
				return somePlaces(3), nil
			},
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentTypeQuery, PlaceType: "музей"})
		assert.Equal(t, "🏷️ **Лучшие музеи в городе:**\n\nНашёл 3 места:", text)
		assert.Len(t, places, 3)
	})

	t.Run("single result uses singular wording", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			byType: func(string, int) ([]model.Place, error) { return somePlaces(1), nil },
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentTypeQuery, PlaceType: "музей"})
		assert.Contains(t, text, "Лучшее место в категории «музей»")
		assert.Contains(t, text, "Нашёл 1 место:")
		assert.Len(t, places, 1)
	})

	t.Run("empty category apologizes", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			byType: func(string, int) ([]model.Place, error) { return nil, nil },
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentTypeQuery, PlaceType: "музей"})
		require.NotEmpty(t, text)
		assert.Contains(t, text, "«музей»")
		assert.Empty(t, places)
	})
}

func TestRespondKeywordSearch(t *testing.T) {
	t.Run("results found", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			byKeyword: func(query string, limit int) ([]model.Place, error) {
				assert.Equal(t, "третьяковка", query)
				assert.Equal(t, 10, limit)
				return somePlaces(2), nil
			},
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentKeywordSearch, Query: "третьяковка"})
		assert.Contains(t, text, "нашёл 2 места")
		assert.Len(t, places, 2)
	})

	t.Run("nothing found", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			byKeyword: func(string, int) ([]model.Place, error) { return nil, nil },
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentKeywordSearch, Query: "третьяковку"})
		assert.True(t, strings.HasPrefix(text, "По запросу \"третьяковку\" ничего не найдено"), "got %q", text)
		assert.Empty(t, places)
	})
}

func TestRespondPopular(t *testing.T) {
	t.Run("results found", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			popular: func(limit int) ([]model.Place, error) { return somePlaces(5), nil },
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentPopular})
		assert.Equal(t, "⭐ **Топ мест города:**\n\nНашёл 5 мест:", text)
		assert.Len(t, places, 5)
	})

	t.Run("empty database", func(t *testing.T) {
		r := newTestResponder(&fakePlaces{
			popular: func(int) ([]model.Place, error) { return nil, nil },
		})

		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentPopular})
		assert.Equal(t, noPlacesReply, text)
		assert.Empty(t, places)
	})
}

// Repository failures are swallowed: every data intent degrades to the fixed
// error reply and the conversation continues.
func TestRespondRepositoryFailure(t *testing.T) {
	boom := errors.New("connection refused")
	r := newTestResponder(&fakePlaces{
		byKeyword: func(string, int) ([]model.Place, error) { return nil, boom },
		byType:    func(string, int) ([]model.Place, error) { return nil, boom },
		popular:   func(int) ([]model.Place, error) { return nil, boom },
	})

	intents := []model.Intent{
		{Kind: model.IntentTypeQuery, PlaceType: "кафе"},
		{Kind: model.IntentKeywordSearch, Query: "третьяковка"},
		{Kind: model.IntentPopular},
	}
	for _, intent := range intents {
		text, places := r.Respond(context.Background(), intent)
		assert.Equal(t, errorReply, text, "intent %s", intent.Kind)
		assert.Empty(t, places)
	}
}

// The fallback reply is pinned by the injected picker
func TestRespondFallbackPicker(t *testing.T) {
	for i := range fallbackReplies {
		r := NewResponder(&fakePlaces{}, fixedPicker{index: i}, 10, time.Second)
		text, places := r.Respond(context.Background(), model.Intent{Kind: model.IntentFallback})
		assert.Equal(t, fallbackReplies[i], text)
		assert.Empty(t, places)
	}
}

package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"placesbot/internal/model"
)

// Canned reply texts. The fallback replies are chosen by the injected Picker.
const (
	greetingReply = "Привет! 👋 Я помогу найти интересные места в городе. " +
		"Напишите, что вас интересует — например, «кафе» или «найди парк у реки»."
	helpReply = "Вот что я умею:\n" +
		"• показать места по категории — напишите «музеи» или «кафе»\n" +
		"• найти место по названию или описанию — «найди третьяковку»\n" +
		"• подсказать самые популярные места — «топ мест»\n" +
		"Просто напишите, что хотите посмотреть 🙂"
	thanksReply   = "Всегда пожалуйста! 😊 Обращайтесь, если захотите найти ещё что-нибудь интересное."
	farewellReply = "До встречи! 👋 Хорошей прогулки!"
	errorReply    = "Упс, что-то пошло не так. Попробуйте ещё раз чуть позже 🙏"
	noPlacesReply = "В базе пока нет мест. Загляните позже 😔"
)

var fallbackReplies = []string{
	"Не совсем понял вас 🤔 Попробуйте написать название категории, например «кафе» или «музеи».",
	"Хм, я такого не знаю. Могу показать места по категории или найти что-то по названию — напишите «помощь».",
	"Давайте попробуем иначе: напишите «топ мест» или назовите, что ищете, например «найди парк».",
}

// PlaceSource is the read-only place catalog the responder queries
type PlaceSource interface {
	FindByKeyword(ctx context.Context, query string, limit int) ([]model.Place, error)
	FindByType(ctx context.Context, placeType string, limit int) ([]model.Place, error)
	FindPopular(ctx context.Context, limit int) ([]model.Place, error)
}

// Responder turns a classified intent into the reply text and the place
// cards to attach. Repository failures never propagate: the reply degrades
// to a fixed apology and the conversation continues.
type Responder struct {
	places  PlaceSource
	picker  Picker
	limit   int
	timeout time.Duration
}

// NewResponder creates a responder. limit caps search and popular results,
// timeout bounds each repository query.
func NewResponder(places PlaceSource, picker Picker, limit int, timeout time.Duration) *Responder {
	return &Responder{
		places:  places,
		picker:  picker,
		limit:   limit,
		timeout: timeout,
	}
}

// Respond generates the reply for one intent
func (r *Responder) Respond(ctx context.Context, intent model.Intent) (string, []model.Place) {
	switch intent.Kind {
	case model.IntentGreeting:
		return greetingReply, nil
	case model.IntentHelp:
		return helpReply, nil
	case model.IntentTypeQuery:
		return r.respondTypeQuery(ctx, intent.PlaceType)
	case model.IntentKeywordSearch:
		return r.respondKeywordSearch(ctx, intent.Query)
	case model.IntentPopular:
		return r.respondPopular(ctx)
	case model.IntentThanks:
		return thanksReply, nil
	case model.IntentFarewell:
		return farewellReply, nil
	default:
		return fallbackReplies[r.picker.Pick(len(fallbackReplies))], nil
	}
}

func (r *Responder) respondTypeQuery(ctx context.Context, placeType string) (string, []model.Place) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	places, err := r.places.FindByType(ctx, placeType, r.limit)
	if err != nil {
		log.Printf("⚠️  place lookup by type %q failed: %v", placeType, err)
		return errorReply, nil
	}
	if len(places) == 0 {
		return fmt.Sprintf("К сожалению, в категории «%s» пока нет мест 😔", placeType), nil
	}

	var title string
	if len(places) == 1 {
		title = fmt.Sprintf("🏷️ **Лучшее место в категории «%s»:**", placeType)
	} else {
		title = fmt.Sprintf("🏷️ **Лучшие %s в городе:**", PluralizeType(placeType))
	}
	text := fmt.Sprintf("%s\n\nНашёл %d %s:", title, len(places), Declension(len(places), PlaceForms))
	return text, places
}

func (r *Responder) respondKeywordSearch(ctx context.Context, query string) (string, []model.Place) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	places, err := r.places.FindByKeyword(ctx, query, r.limit)
	if err != nil {
		log.Printf("⚠️  place search for %q failed: %v", query, err)
		return errorReply, nil
	}
	if len(places) == 0 {
		return fmt.Sprintf("По запросу \"%s\" ничего не найдено. Попробуйте изменить формулировку 🔍", query), nil
	}
	text := fmt.Sprintf("🔍 **По запросу «%s» нашёл %d %s:**", query, len(places), Declension(len(places), PlaceForms))
	return text, places
}

func (r *Responder) respondPopular(ctx context.Context) (string, []model.Place) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	places, err := r.places.FindPopular(ctx, r.limit)
	if err != nil {
		log.Printf("⚠️  popular places lookup failed: %v", err)
		return errorReply, nil
	}
	if len(places) == 0 {
		return noPlacesReply, nil
	}
	text := fmt.Sprintf("⭐ **Топ мест города:**\n\nНашёл %d %s:", len(places), Declension(len(places), PlaceForms))
	return text, places
}

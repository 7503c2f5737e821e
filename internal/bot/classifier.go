package bot

import (
	"strings"
	"unicode/utf8"

	"placesbot/internal/model"
)

// Trigger tokens checked by the classification rules. All comparisons run on
// the case-folded utterance, substring containment throughout.
var (
	greetingTokens = []string{"привет", "здравствуй"}
	helpTokens     = []string{"помощь", "что ты умеешь"}
	searchTokens   = []string{"найди", "ищи", "поиск", "где", "посоветуй", "рекомендуй"}
	fillerTokens   = []string{"мне", "пожалуйста"}
	popularTokens  = []string{"популярные", "топ", "лучшие", "рейтинг", "высокий рейтинг"}
	thanksTokens   = []string{"спасибо", "благодарю"}
	farewellTokens = []string{"пока", "до свидания", "прощай"}
)

// minKeywordRunes is the shortest residual (in runes) that still counts as a
// usable search query after trigger and filler words are stripped.
const minKeywordRunes = 3

// rule is one classification step: it either produces an intent or passes
type rule struct {
	name  string
	apply func(utterance string, knownTypes []string) (model.Intent, bool)
}

// Classifier maps an utterance to an intent by evaluating an ordered rule
// list, first match wins. It is a pure function of the utterance and the
// session vocabulary; it never fails, the last rule catches everything.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the classifier with its fixed rule priority:
// greeting, help, known place type, keyword search, popular, thanks,
// farewell, fallback.
func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{name: "greeting", apply: tokenRule(greetingTokens, model.IntentGreeting)},
		{name: "help", apply: tokenRule(helpTokens, model.IntentHelp)},
		{name: "place_type", apply: placeTypeRule},
		{name: "keyword_search", apply: keywordSearchRule},
		{name: "popular", apply: tokenRule(popularTokens, model.IntentPopular)},
		{name: "thanks", apply: tokenRule(thanksTokens, model.IntentThanks)},
		{name: "farewell", apply: tokenRule(farewellTokens, model.IntentFarewell)},
	}}
}

// Classify runs the rule list over the utterance. knownTypes is the current
// session vocabulary in its stable order.
func (c *Classifier) Classify(utterance string, knownTypes []string) model.Intent {
	u := normalize(utterance)
	for _, r := range c.rules {
		if intent, ok := r.apply(u, knownTypes); ok {
			return intent
		}
	}
	return model.Intent{Kind: model.IntentFallback}
}

// tokenRule builds a rule that fires when the utterance contains any token
func tokenRule(tokens []string, kind model.IntentKind) func(string, []string) (model.Intent, bool) {
	return func(utterance string, _ []string) (model.Intent, bool) {
		if containsAny(utterance, tokens) {
			return model.Intent{Kind: kind}, true
		}
		return model.Intent{}, false
	}
}

func placeTypeRule(utterance string, knownTypes []string) (model.Intent, bool) {
	if placeType, ok := MatchType(utterance, knownTypes); ok {
		return model.Intent{Kind: model.IntentTypeQuery, PlaceType: placeType}, true
	}
	return model.Intent{}, false
}

// keywordSearchRule fires on explicit search triggers ("найди кофейню у
// вокзала"). The trigger and filler words are stripped and the residual
// becomes the query. A residual too short to search on resolves the rule to
// fallback directly instead of passing to the lower-priority rules.
func keywordSearchRule(utterance string, _ []string) (model.Intent, bool) {
	if !containsAny(utterance, searchTokens) {
		return model.Intent{}, false
	}
	query := utterance
	for _, token := range searchTokens {
		query = strings.ReplaceAll(query, token, " ")
	}
	for _, token := range fillerTokens {
		query = strings.ReplaceAll(query, token, " ")
	}
	query = strings.Join(strings.Fields(query), " ")
	if utf8.RuneCountInString(query) < minKeywordRunes {
		return model.Intent{Kind: model.IntentFallback}, true
	}
	return model.Intent{Kind: model.IntentKeywordSearch, Query: query}, true
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

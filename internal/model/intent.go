package model

// IntentKind enumerates everything the assistant understands. Classification
// is total: any utterance that matches no other rule becomes IntentFallback.
type IntentKind int

const (
	IntentGreeting IntentKind = iota
	IntentHelp
	IntentTypeQuery
	IntentKeywordSearch
	IntentPopular
	IntentThanks
	IntentFarewell
	IntentFallback
)

// String returns a stable machine-readable name, used as a metric label
func (k IntentKind) String() string {
	switch k {
	case IntentGreeting:
		return "greeting"
	case IntentHelp:
		return "help"
	case IntentTypeQuery:
		return "type_query"
	case IntentKeywordSearch:
		return "keyword_search"
	case IntentPopular:
		return "popular"
	case IntentThanks:
		return "thanks"
	case IntentFarewell:
		return "farewell"
	default:
		return "fallback"
	}
}

// Intent is the classified purpose of one utterance. PlaceType is set only
// for IntentTypeQuery, Query only for IntentKeywordSearch.
type Intent struct {
	Kind      IntentKind `json:"kind"`
	PlaceType string     `json:"place_type,omitempty"`
	Query     string     `json:"query,omitempty"`
}

// DeclensionForms holds the three noun forms needed for Russian count
// agreement: 1 место, 2 места, 5 мест.
type DeclensionForms struct {
	One  string
	Few  string
	Many string
}

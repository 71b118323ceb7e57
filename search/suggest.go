package search

import (
	"sync"
	"time"
	"unicode/utf8"

	"cityweather.app/metrics"
	"cityweather.app/models"
	"cityweather.app/providers"
)

// SuggestController drives the autocomplete dropdown. Each keystroke updates
// the raw text immediately, reschedules the debounced main-list refresh, and
// once the minimum-length gate is met fires an eager suggestion fetch whose
// response fully replaces the prior set. Responses are generation-stamped so
// a slow fetch cannot resurrect suggestions for text the user already left.
type SuggestController struct {
	mu       sync.Mutex
	gateway  providers.CityProvider
	list     *Controller
	debounce *Debouncer
	minChars int
	limit    int
	metrics  *metrics.SearchMetricsCollector

	text        string
	suggestions []models.CityRecord
	open        bool
	generation  uint64
}

// NewSuggestController wires the suggestion pipeline to the listing
// controller it refreshes and pins into.
func NewSuggestController(
	gateway providers.CityProvider,
	list *Controller,
	debounceDelay time.Duration,
	minChars, limit int,
) *SuggestController {
	return &SuggestController{
		gateway:  gateway,
		list:     list,
		debounce: NewDebouncer(debounceDelay),
		minChars: minChars,
		limit:    limit,
		metrics:  metrics.GetSearchMetrics(),
	}
}

// Input processes one keystroke worth of query text.
func (s *SuggestController) Input(text string) {
	s.mu.Lock()
	s.text = text
	s.generation++
	gen := s.generation

	gated := utf8.RuneCountInString(text) < s.minChars
	if gated {
		s.suggestions = nil
		s.open = false
	}
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		s.list.SetQuery(text)
	})

	if gated {
		return
	}

	s.metrics.Suggestions.Inc()
	go s.fetch(gen, text)
}

// Select adopts a suggestion: the query text becomes the chosen name, the
// panel closes, and the listing collapses to that one record.
func (s *SuggestController) Select(record models.CityRecord) {
	s.mu.Lock()
	s.generation++
	s.text = record.Name
	s.suggestions = nil
	s.open = false
	s.mu.Unlock()

	// The pending debounced refresh would override the pin with a full
	// search for the chosen name.
	s.debounce.Stop()
	s.list.Pin(record)
}

// Dismiss closes the panel without touching the query text.
func (s *SuggestController) Dismiss() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// Text returns the current raw query text.
func (s *SuggestController) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Suggestions returns the current suggestion set and panel visibility.
func (s *SuggestController) Suggestions() ([]models.CityRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions := make([]models.CityRecord, len(s.suggestions))
	copy(suggestions, s.suggestions)
	return suggestions, s.open
}

func (s *SuggestController) fetch(gen uint64, text string) {
	records, err := s.gateway.SuggestCities(text, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	if err != nil {
		// Suggestions are best-effort; the panel keeps its prior set.
		return
	}

	s.suggestions = records
	s.open = len(records) > 0
}

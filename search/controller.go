package search

import (
	"sync"

	"cityweather.app/metrics"
	"cityweather.app/models"
	"cityweather.app/providers"
)

// State is the lifecycle phase of the paged listing.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateExhausted State = "exhausted"
	StateError     State = "error"
)

// Snapshot is a point-in-time copy of the controller state, safe to render
// from any goroutine.
type Snapshot struct {
	Query      models.SearchQuery
	Items      []models.CityRecord
	State      State
	HasMore    bool
	IsLoading  bool
	NextOffset int
	TotalCount int
}

// Controller is the paged search state machine. Query or sort mutations
// reset the page set and bump a generation counter; a completed fetch is
// applied only while its captured generation still matches, so a stale
// response can never overwrite results of a newer query.
//
// Fetches run on their own goroutines; the caller observes progress through
// the update hook or Snapshot.
type Controller struct {
	mu       sync.Mutex
	gateway  providers.CityProvider
	pageSize int
	metrics  *metrics.SearchMetricsCollector

	notify   func(error)
	onUpdate func(Snapshot)

	query      models.SearchQuery
	items      []models.CityRecord
	nextOffset int
	hasMore    bool
	loading    bool
	state      State
	totalCount int
	generation uint64
}

// NewController creates an idle controller over the gateway.
func NewController(gateway providers.CityProvider, pageSize int) *Controller {
	return &Controller{
		gateway:  gateway,
		pageSize: pageSize,
		metrics:  metrics.GetSearchMetrics(),
		query: models.SearchQuery{
			SortColumn:    models.SortByName,
			SortDirection: models.SortAsc,
		},
		hasMore: true,
		state:   StateIdle,
	}
}

// SetNotifier registers the user-facing error notification hook.
func (c *Controller) SetNotifier(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

// SetUpdateHook registers a render callback fired after every state change.
func (c *Controller) SetUpdateHook(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// SetQuery replaces the query text, resets the page set and issues a fresh
// first-page fetch.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	c.query.Text = text
	c.reloadLocked()
	c.mu.Unlock()
}

// SetSort selects the sort column, toggling direction when the column is
// already active, then resets and refetches.
func (c *Controller) SetSort(column models.SortColumn) {
	c.mu.Lock()
	if c.query.SortColumn == column && c.query.SortDirection == models.SortAsc {
		c.query.SortDirection = models.SortDesc
	} else {
		c.query.SortColumn = column
		c.query.SortDirection = models.SortAsc
	}
	c.reloadLocked()
	c.mu.Unlock()
}

// LoadNextPage requests the next page. It is a no-op unless more results
// are expected and no fetch is already in flight; the loading flag is the
// guard that keeps continuations single-file per generation.
func (c *Controller) LoadNextPage() {
	c.mu.Lock()
	if !c.hasMore || c.loading {
		c.mu.Unlock()
		return
	}
	c.loading = true
	if len(c.items) == 0 {
		c.state = StateLoading
	}
	gen := c.generation
	query := c.query
	offset := c.nextOffset
	c.mu.Unlock()

	go c.fetch(gen, query, offset, false)
}

// Pin collapses the listing to a single record, the affordance used when a
// suggestion is selected. Any in-flight fetch becomes stale.
func (c *Controller) Pin(record models.CityRecord) {
	c.mu.Lock()
	c.generation++
	c.query.Text = record.Name
	c.items = []models.CityRecord{record}
	c.nextOffset = 0
	c.hasMore = false
	c.loading = false
	c.totalCount = 1
	c.state = StateExhausted
	hook := c.onUpdate
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// reloadLocked resets page state for the current query and dispatches the
// first-page fetch. Caller holds the mutex.
func (c *Controller) reloadLocked() {
	c.generation++
	c.items = nil
	c.nextOffset = 0
	c.hasMore = true
	c.loading = true
	c.totalCount = 0
	c.state = StateLoading
	c.metrics.Queries.Inc()

	gen := c.generation
	query := c.query
	go c.fetch(gen, query, 0, true)
}

func (c *Controller) fetch(gen uint64, query models.SearchQuery, offset int, reset bool) {
	records, total, err := c.gateway.SearchCities(
		query.Text, offset, c.pageSize, query.SortColumn, query.SortDirection)

	c.mu.Lock()
	if gen != c.generation {
		// A newer query superseded this fetch while it was in flight.
		c.metrics.StaleDropped.Inc()
		c.mu.Unlock()
		return
	}

	c.loading = false

	var notify func(error)
	if err != nil {
		c.state = StateError
		c.metrics.Errors.Inc()
		notify = c.notify
	} else {
		if reset {
			c.items = records
		} else {
			c.items = append(c.items, records...)
		}
		c.nextOffset = offset + c.pageSize
		c.hasMore = len(records) == c.pageSize
		c.totalCount = total
		if c.hasMore {
			c.state = StateLoaded
		} else {
			c.state = StateExhausted
		}
		c.metrics.PagesLoaded.Inc()
	}

	hook := c.onUpdate
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if notify != nil {
		notify(err)
	}
	if hook != nil {
		hook(snapshot)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	items := make([]models.CityRecord, len(c.items))
	copy(items, c.items)
	return Snapshot{
		Query:      c.query,
		Items:      items,
		State:      c.state,
		HasMore:    c.hasMore,
		IsLoading:  c.loading,
		NextOffset: c.nextOffset,
		TotalCount: c.totalCount,
	}
}

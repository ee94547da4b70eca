package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

// Errors returned by CatalogStore. ErrCatalogNotReady and ErrItemNotFound
// are reported without contacting the server.
var (
	ErrCatalogNotReady = errors.New("catalog is not loaded")
	ErrItemNotFound    = errors.New("media item not found")
	ErrStoreClosed     = errors.New("catalog store closed")
)

// CatalogStatus is the load state of the snapshot. A new store reports
// CatalogLoading until its first load finishes.
type CatalogStatus string

const (
	CatalogLoading CatalogStatus = "loading"
	CatalogReady   CatalogStatus = "ready"
	CatalogError   CatalogStatus = "error"
)

// View is a read-side filter over the snapshot. Every view keeps server order.
type View string

const (
	ViewAll        View = "all"
	ViewMovies     View = "movies"
	ViewTVSeries   View = "tv"
	ViewBookmarked View = "bookmarks"
	ViewTrending   View = "trending"
)

// Includes reports whether item belongs to the view. Unknown views match nothing.
func (v View) Includes(item *models.MediaItem) bool {
	switch v {
	case ViewAll:
		return true
	case ViewMovies:
		return item.IsMovie()
	case ViewTVSeries:
		return item.IsTVSeries()
	case ViewBookmarked:
		return item.IsBookmarked
	case ViewTrending:
		return item.IsTrending
	}
	return false
}

// CatalogClient is the part of the API the catalog needs.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]*models.MediaItem, error)
	ToggleBookmark(ctx context.Context, id string) (bool, error)
}

type loadCall struct {
	done chan struct{}
	err  error
}

// CatalogStore holds the catalog snapshot.
//
// The items slice is never modified in place: a confirmed toggle publishes a
// new slice in which only the toggled entry is a new pointer, so callers can
// compare entries by identity to find what changed.
type CatalogStore struct {
	client CatalogClient
	logger logging.Logger

	// lifetime of the store; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	status  CatalogStatus
	started bool
	closed  bool
	err     error
	items   []*models.MediaItem
	index   map[string]int
	loading *loadCall

	// per-id ticket of the last issued and the last applied toggle
	issued  map[string]uint64
	applied map[string]uint64
}

// NewCatalogStore returns an empty store. Nothing is fetched until Load.
func NewCatalogStore(c CatalogClient, logger logging.Logger) *CatalogStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &CatalogStore{
		client:  c,
		logger:  logger.With("module", "catalog"),
		ctx:     ctx,
		cancel:  cancel,
		status:  CatalogLoading,
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// Load fetches the catalog once. Concurrent callers share one request; after
// it finishes Load returns that result without fetching again. ctx only bounds
// how long the caller waits.
func (s *CatalogStore) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if s.started && s.loading == nil {
		err := s.err
		s.mu.Unlock()
		return err
	}
	call := s.startLocked()
	s.mu.Unlock()

	return s.wait(ctx, call)
}

// Reload is the user-initiated retry. It joins a fetch already in flight
// instead of starting a second one. When it fails after an earlier load
// succeeded, the previous snapshot stays in place and the store stays ready.
func (s *CatalogStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	call := s.startLocked()
	s.mu.Unlock()

	return s.wait(ctx, call)
}

func (s *CatalogStore) startLocked() *loadCall {
	if s.loading != nil {
		return s.loading
	}

	call := &loadCall{done: make(chan struct{})}
	s.loading = call
	s.started = true
	s.status = CatalogLoading

	go s.fetch(call)
	return call
}

func (s *CatalogStore) fetch(call *loadCall) {
	items, err := s.client.FetchCatalog(s.ctx)

	s.mu.Lock()
	defer func() {
		s.loading = nil
		s.mu.Unlock()
		close(call.done)
	}()

	if s.closed {
		call.err = ErrStoreClosed
		return
	}

	if err == nil {
		err = models.ValidateSnapshot(items)
	}
	if err != nil {
		s.logger.Error(s.ctx, "catalog load failed", "error", err)
		call.err = fmt.Errorf("load catalog: %w", err)

		// a failed reload keeps the last snapshot the server confirmed
		if s.index != nil {
			s.status = CatalogReady
			return
		}
		s.status = CatalogError
		s.items = nil
		s.err = call.err
		return
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}

	s.items = slices.Clone(items)
	s.index = index
	s.status = CatalogReady
	s.err = nil
	s.logger.Info(s.ctx, "catalog loaded", "items", len(items))
}

func (s *CatalogStore) wait(ctx context.Context, call *loadCall) error {
	select {
	case <-call.done:
		return call.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ToggleBookmark asks the server to flip the bookmark of id and writes the
// value the server returns into the snapshot. On failure the snapshot is left
// as it was and the error is returned.
//
// When toggles of the same id overlap, a response is applied only if no
// later-issued toggle has been applied already; the returned value is then
// the one the snapshot holds.
func (s *CatalogStore) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrStoreClosed
	}
	if s.status != CatalogReady {
		s.mu.Unlock()
		return false, ErrCatalogNotReady
	}
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.issued[id]++
	ticket := s.issued[id]
	s.mu.Unlock()

	ctx, cancel := s.scope(ctx)
	defer cancel()

	value, err := s.client.ToggleBookmark(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "toggle bookmark failed", "id", id, "error", err)
		return false, fmt.Errorf("toggle bookmark %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrStoreClosed
	}
	i, ok := s.index[id]
	if !ok {
		// snapshot was replaced by a reload that no longer has the item
		return false, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if ticket <= s.applied[id] {
		s.logger.Debug(ctx, "stale bookmark response dropped", "id", id, "ticket", ticket)
		return s.items[i].IsBookmarked, nil
	}
	s.applied[id] = ticket

	if s.items[i].IsBookmarked != value {
		next := slices.Clone(s.items)
		next[i] = s.items[i].WithBookmark(value)
		s.items = next
	}
	return value, nil
}

// scope derives a request context that is also cancelled when the store closes.
func (s *CatalogStore) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Items returns the current snapshot in server order. The slice is the
// caller's; the items are shared and must not be modified.
func (s *CatalogStore) Items() []*models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// View returns the items of the snapshot that belong to v, in server order.
// Items are shared with Items and must not be modified.
func (s *CatalogStore) View(v View) []*models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.MediaItem
	for _, item := range s.items {
		if v.Includes(item) {
			out = append(out, item)
		}
	}
	return out
}

// Item looks up one entry of the snapshot by id.
func (s *CatalogStore) Item(id string) (*models.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// Status returns the load state.
func (s *CatalogStore) Status() CatalogStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Started reports whether Load or Reload has been called.
func (s *CatalogStore) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Err is the error that left the store in CatalogError, nil otherwise. A
// failed Reload over a loaded snapshot only reports through its return value.
func (s *CatalogStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close cancels outstanding requests. Results that arrive afterwards are
// dropped and every later call fails with ErrStoreClosed.
func (s *CatalogStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

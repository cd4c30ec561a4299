package usecase_sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
)

var (
	ErrAlreadyStarted = errors.New("collection sync already started")
	ErrSubscribe      = errors.New("unable to subscribe to collection stream")
)

// RawEvent mirrors one rating event as the store delivers it.
type RawEvent struct {
	Value     int
	Timestamp int64 // unix milliseconds
}

// RawEntry is the loosely-typed record shape of the remote store. It is
// reshaped into model.Entry in exactly one place, so nothing outside this
// package touches remote payloads.
type RawEntry struct {
	Title      string
	Kind       string
	Year       int
	BaseRating int
	Category   string
	Language   string
	AgeRating  string
	CreatedAt  int64 // unix milliseconds
	CreatedBy  string

	// Events is keyed by rater ID, then by the store's event key.
	Events map[string]map[string]RawEvent
}

// RawSnapshot is a full replacement view of the collection, keyed by entry ID.
type RawSnapshot map[string]RawEntry

//go:generate mockery --name=CollectionStore --output=./mocks/store --filename=store.go
type CollectionStore interface {
	// Subscribe registers onSnapshot for whole-collection snapshots and
	// delivers the current state right away. The returned function stops
	// further deliveries and is safe to call more than once.
	Subscribe(onSnapshot func(RawSnapshot)) (func(), error)
}

//go:generate mockery --name=PosterProvider --output=./mocks/poster --filename=poster.go
type PosterProvider interface {
	PosterLink(ctx context.Context, title string, kind model.Kind) (string, error)
}

type OnUpdate func(entries []model.Entry)

const lookupTimeout = 10 * time.Second

// Usecase owns the authoritative local view of the remote collection. Every
// snapshot replaces the previous state entirely; poster decoration happens
// best-effort after the snapshot has already been delivered.
type Usecase struct {
	store   CollectionStore
	posters PosterProvider
	kinds   map[model.Kind]struct{}
	logger  *slog.Logger

	mu       sync.Mutex
	started  bool
	unsub    func()
	onUpdate OnUpdate
	entries  map[string]model.Entry

	// posterCache survives snapshot replacement: decoration is derived
	// state, not part of what the store pushes.
	posterCache map[string]string
	pending     map[string]struct{}

	snapshots   chan RawSnapshot
	decorations chan decoration
	done        chan struct{}
	stopOnce    sync.Once
}

type decoration struct {
	entryID string
	link    string
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

// WithDecoratedKinds narrows poster lookups to the given kinds. By default
// every kind is decorated.
func WithDecoratedKinds(kinds ...model.Kind) Option {
	return func(u *Usecase) {
		u.kinds = make(map[model.Kind]struct{}, len(kinds))
		for _, k := range kinds {
			u.kinds[k] = struct{}{}
		}
	}
}

func New(
	store CollectionStore,
	posters PosterProvider,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		store:   store,
		posters: posters,
		kinds: map[model.Kind]struct{}{
			model.KindMovie:  {},
			model.KindSeries: {},
		},
		logger:      slog.Default(),
		entries:     make(map[string]model.Entry),
		posterCache: make(map[string]string),
		pending:     make(map[string]struct{}),
		snapshots:   make(chan RawSnapshot),
		decorations: make(chan decoration),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Start subscribes to the store and begins delivering reshaped snapshots to
// onUpdate. The first onUpdate fires as soon as the store pushes its initial
// snapshot, without waiting for any poster lookup.
func (u *Usecase) Start(onUpdate OnUpdate) error {
	u.mu.Lock()
	if u.started {
		u.mu.Unlock()
		return ErrAlreadyStarted
	}
	u.started = true
	u.onUpdate = onUpdate
	u.mu.Unlock()

	go u.run()

	unsub, err := u.store.Subscribe(u.enqueue)
	if err != nil {
		u.Stop()
		return fmt.Errorf("%w: %w", ErrSubscribe, err)
	}

	u.mu.Lock()
	u.unsub = unsub
	u.mu.Unlock()

	return nil
}

// Stop unsubscribes from the store and halts onUpdate deliveries. Lookups
// already in flight are allowed to finish but their results are discarded.
// Safe to call more than once.
func (u *Usecase) Stop() {
	u.stopOnce.Do(func() {
		u.mu.Lock()
		unsub := u.unsub
		u.mu.Unlock()

		if unsub != nil {
			unsub()
		}
		close(u.done)
	})
}

// Current returns the last synced collection state.
func (u *Usecase) Current() []model.Entry {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.entryList()
}

// Entry looks an entry up in the last synced state.
func (u *Usecase) Entry(id string) (model.Entry, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	e, ok := u.entries[id]
	return e, ok
}

func (u *Usecase) enqueue(s RawSnapshot) {
	select {
	case u.snapshots <- s:
	case <-u.done:
	}
}

// run serializes snapshot and decoration handling so collection state is only
// ever mutated from one goroutine.
func (u *Usecase) run() {
	for {
		select {
		case <-u.done:
			return
		case s := <-u.snapshots:
			u.applySnapshot(s)
		case d := <-u.decorations:
			u.applyDecoration(d)
		}
	}
}

func (u *Usecase) applySnapshot(raw RawSnapshot) {
	fresh := u.reshape(raw)

	u.mu.Lock()
	u.entries = fresh
	for id, e := range u.entries {
		if link, ok := u.posterCache[id]; ok {
			e.PosterLink = link
			u.entries[id] = e
		}
	}
	for id := range u.posterCache {
		if _, ok := u.entries[id]; !ok {
			delete(u.posterCache, id)
		}
	}
	entries := u.entryList()
	u.mu.Unlock()

	u.emit(entries)

	u.mu.Lock()
	for id, e := range u.entries {
		if e.PosterLink != "" {
			continue
		}
		if _, ok := u.kinds[e.Kind]; !ok {
			continue
		}
		if _, ok := u.pending[id]; ok {
			continue
		}
		u.pending[id] = struct{}{}
		go u.lookup(id, e.Title, e.Kind)
	}
	u.mu.Unlock()
}

// lookup is fire-and-forget: failures are swallowed, a missing poster is a
// cosmetic degradation and never an error.
func (u *Usecase) lookup(entryID, title string, kind model.Kind) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	link, err := u.posters.PosterLink(ctx, title, kind)
	if err != nil {
		u.logger.Debug("poster lookup failed",
			slog.String("title", title),
			slog.String("error", err.Error()))
		link = ""
	}

	select {
	case u.decorations <- decoration{entryID: entryID, link: link}:
	case <-u.done:
	}
}

func (u *Usecase) applyDecoration(d decoration) {
	u.mu.Lock()
	delete(u.pending, d.entryID)

	if d.link == "" {
		u.mu.Unlock()
		return
	}

	e, ok := u.entries[d.entryID]
	if !ok {
		// Entry left the collection while the lookup was in flight.
		u.mu.Unlock()
		return
	}

	u.posterCache[d.entryID] = d.link
	e.PosterLink = d.link
	u.entries[d.entryID] = e
	entries := u.entryList()
	u.mu.Unlock()

	u.emit(entries)
}

func (u *Usecase) emit(entries []model.Entry) {
	select {
	case <-u.done:
		return
	default:
	}

	u.mu.Lock()
	onUpdate := u.onUpdate
	u.mu.Unlock()

	if onUpdate != nil {
		onUpdate(entries)
	}
}

// entryList returns entries in a deterministic order. Callers hold u.mu.
func (u *Usecase) entryList() []model.Entry {
	out := make([]model.Entry, 0, len(u.entries))
	for _, e := range u.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// reshape maps raw store records into entries. Records that cannot be parsed
// are dropped rather than delivered half-formed.
func (u *Usecase) reshape(raw RawSnapshot) map[string]model.Entry {
	entries := make(map[string]model.Entry, len(raw))

	for id, rec := range raw {
		createdBy, err := uuid.Parse(rec.CreatedBy)
		if err != nil {
			u.logger.Warn("dropping record with malformed creator",
				slog.String("entry_id", id),
				slog.String("created_by", rec.CreatedBy))
			continue
		}

		e := model.Entry{
			ID:         id,
			Title:      rec.Title,
			Kind:       model.Kind(rec.Kind),
			Year:       rec.Year,
			BaseRating: rec.BaseRating,
			Category:   model.Category(rec.Category),
			Language:   rec.Language,
			AgeRating:  rec.AgeRating,
			CreatedAt:  time.UnixMilli(rec.CreatedAt),
			CreatedBy:  createdBy,
		}

		if len(rec.Events) > 0 {
			e.Ratings = make(map[uuid.UUID][]model.RatingEvent, len(rec.Events))
			for rater, keyed := range rec.Events {
				raterID, err := uuid.Parse(rater)
				if err != nil {
					u.logger.Warn("dropping events with malformed rater",
						slog.String("entry_id", id),
						slog.String("rater", rater))
					continue
				}
				e.Ratings[raterID] = chronological(keyed)
			}
		}

		entries[id] = e
	}

	return entries
}

// chronological flattens keyed events into timestamp order. Equal timestamps
// fall back to key order so the result is deterministic.
func chronological(keyed map[string]RawEvent) []model.RatingEvent {
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keyed[keys[i]], keyed[keys[j]]
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return keys[i] < keys[j]
	})

	events := make([]model.RatingEvent, 0, len(keys))
	for _, k := range keys {
		events = append(events, model.RatingEvent{
			Value:     keyed[k].Value,
			Timestamp: time.UnixMilli(keyed[k].Timestamp),
		})
	}
	return events
}

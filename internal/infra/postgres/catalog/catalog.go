package infra_postgres_catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
	usecase_catalog "github.com/humanbelnik/cinetally/internal/usecase/catalog"
	usecase_sync "github.com/humanbelnik/cinetally/internal/usecase/sync"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	notifyChannel        = "catalog_changed"
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
)

// Driver is the collection store adapter. Postgres pushes change
// notifications over LISTEN/NOTIFY; every notification triggers a full
// snapshot reload, so subscribers always see whole-collection replacement
// state, never diffs.
type Driver struct {
	db     *sqlx.DB
	dsn    string
	logger *slog.Logger
}

type Option func(*Driver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func New(db *sqlx.DB, dsn string, opts ...Option) *Driver {
	d := &Driver{
		db:     db,
		dsn:    dsn,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type entryDTO struct {
	ID         uuid.UUID `db:"id"`
	Title      string    `db:"title"`
	Kind       string    `db:"kind"`
	Year       int       `db:"year"`
	BaseRating int       `db:"base_rating"`
	Category   string    `db:"category"`
	Language   string    `db:"language"`
	AgeRating  string    `db:"age_rating"`
	CreatedAt  time.Time `db:"created_at"`
	CreatedBy  uuid.UUID `db:"created_by"`
}

type eventDTO struct {
	ID      uuid.UUID `db:"id"`
	EntryID uuid.UUID `db:"entry_id"`
	RaterID uuid.UUID `db:"rater_id"`
	Value   int       `db:"value"`
	Ts      time.Time `db:"ts"`
}

// Subscribe starts listening for catalog changes and delivers the current
// snapshot right away. The returned function stops deliveries and is safe to
// call more than once.
func (d *Driver) Subscribe(onSnapshot func(usecase_sync.RawSnapshot)) (func(), error) {
	listener := pq.NewListener(d.dsn, minReconnectInterval, maxReconnectInterval, nil)
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	stop := make(chan struct{})
	var once sync.Once
	unsub := func() {
		once.Do(func() {
			close(stop)
			_ = listener.Close()
		})
	}

	go func() {
		d.deliver(onSnapshot, stop)
		for {
			select {
			case <-stop:
				return
			case <-listener.Notify:
				// A nil notification means the connection was
				// re-established; reload either way.
				d.deliver(onSnapshot, stop)
			}
		}
	}()

	return unsub, nil
}

func (d *Driver) deliver(onSnapshot func(usecase_sync.RawSnapshot), stop <-chan struct{}) {
	snap, err := d.loadSnapshot(context.Background())
	if err != nil {
		d.logger.Error("snapshot reload failed", slog.String("error", err.Error()))
		return
	}

	select {
	case <-stop:
	default:
		onSnapshot(snap)
	}
}

func (d *Driver) loadSnapshot(ctx context.Context) (usecase_sync.RawSnapshot, error) {
	var entries []entryDTO
	if err := d.db.SelectContext(ctx, &entries, `
		SELECT id, title, kind, year, base_rating, category, language, age_rating, created_at, created_by
		FROM entries
	`); err != nil {
		return nil, err
	}

	var events []eventDTO
	if err := d.db.SelectContext(ctx, &events, `
		SELECT id, entry_id, rater_id, value, ts
		FROM rating_events
		ORDER BY ts
	`); err != nil {
		return nil, err
	}

	snap := make(usecase_sync.RawSnapshot, len(entries))
	for _, e := range entries {
		snap[e.ID.String()] = usecase_sync.RawEntry{
			Title:      e.Title,
			Kind:       e.Kind,
			Year:       e.Year,
			BaseRating: e.BaseRating,
			Category:   e.Category,
			Language:   e.Language,
			AgeRating:  e.AgeRating,
			CreatedAt:  e.CreatedAt.UnixMilli(),
			CreatedBy:  e.CreatedBy.String(),
			Events:     make(map[string]map[string]usecase_sync.RawEvent),
		}
	}

	for _, ev := range events {
		rec, ok := snap[ev.EntryID.String()]
		if !ok {
			continue
		}
		rater := ev.RaterID.String()
		if rec.Events[rater] == nil {
			rec.Events[rater] = make(map[string]usecase_sync.RawEvent)
		}
		rec.Events[rater][ev.ID.String()] = usecase_sync.RawEvent{
			Value:     ev.Value,
			Timestamp: ev.Ts.UnixMilli(),
		}
	}

	return snap, nil
}

// Write inserts a new entry and returns its store-assigned ID. Subscribers
// learn about it through the change trigger, not from this call.
func (d *Driver) Write(ctx context.Context, draft model.EntryDraft, createdBy uuid.UUID) (string, error) {
	id := uuid.New()

	query := `
		INSERT INTO entries (id, title, kind, year, base_rating, category, language, age_rating, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), $9)
	`

	if _, err := d.db.ExecContext(ctx, query,
		id, draft.Title, string(draft.Kind), draft.Year, draft.BaseRating,
		string(draft.Category), draft.Language, draft.AgeRating, createdBy,
	); err != nil {
		return "", err
	}

	return id.String(), nil
}

// Append adds one rating event. Events are never updated in place: a rater's
// newer event supersedes older ones at aggregation time.
func (d *Driver) Append(ctx context.Context, entryID string, raterID uuid.UUID, ev model.RatingEvent) error {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return usecase_catalog.ErrEntryNotFound
	}

	query := `
		INSERT INTO rating_events (id, entry_id, rater_id, value, ts)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = d.db.ExecContext(ctx, query, uuid.New(), id, raterID, ev.Value, ev.Timestamp)
	return err
}

// Remove deletes an entry with its rating events. The delete is scoped to
// the creator, so ownership is enforced here rather than re-checked upstream.
func (d *Driver) Remove(ctx context.Context, entryID string, requesterID uuid.UUID) error {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return usecase_catalog.ErrEntryNotFound
	}

	res, err := d.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND created_by = $2`, id, requesterID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_catalog.ErrEntryNotFound
	}

	return nil
}

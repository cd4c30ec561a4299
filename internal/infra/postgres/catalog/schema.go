package infra_postgres_catalog

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	kind        TEXT NOT NULL,
	year        INT NOT NULL,
	base_rating INT NOT NULL,
	category    TEXT NOT NULL,
	language    TEXT NOT NULL,
	age_rating  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_by  UUID NOT NULL
);

CREATE TABLE IF NOT EXISTS rating_events (
	id       UUID PRIMARY KEY,
	entry_id UUID NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
	rater_id UUID NOT NULL,
	value    INT NOT NULL,
	ts       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS rating_events_entry_idx ON rating_events (entry_id, rater_id, ts);

CREATE OR REPLACE FUNCTION notify_catalog_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('catalog_changed', '');
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS entries_changed ON entries;
CREATE TRIGGER entries_changed
	AFTER INSERT OR UPDATE OR DELETE ON entries
	FOR EACH STATEMENT EXECUTE FUNCTION notify_catalog_changed();

DROP TRIGGER IF EXISTS rating_events_changed ON rating_events;
CREATE TRIGGER rating_events_changed
	AFTER INSERT OR UPDATE OR DELETE ON rating_events
	FOR EACH STATEMENT EXECUTE FUNCTION notify_catalog_changed();
`

// Bootstrap applies the catalog schema, including the change triggers the
// subscription relies on.
func (d *Driver) Bootstrap(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Package postgres provides a PostgreSQL journal.Store.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/modernice/notify/internal/env"
	"github.com/modernice/notify/internal/slice"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
)

var _ journal.Store = (*Journal)(nil)

// Journal is a PostgreSQL journal.Store.
type Journal struct {
	onceConnect   sync.Once
	connectionURL string
	database      string
	table         string
	pool          *pgxpool.Pool
}

// JournalOption is an option for the PostgreSQL journal.
type JournalOption func(*Journal)

// URL returns a JournalOption that specifies the connection string to the
// PostgreSQL server.
func URL(url string) JournalOption {
	return func(j *Journal) {
		j.connectionURL = url
	}
}

// Database returns a JournalOption that configures the used database.
// Defaults to "notify".
func Database(name string) JournalOption {
	if name = strings.TrimSpace(name); name == "" {
		panic("database name cannot be empty")
	}

	return func(j *Journal) {
		j.database = name
	}
}

// Table returns a JournalOption that configures the table of the records.
// Defaults to "journal".
func Table(name string) JournalOption {
	if name = strings.TrimSpace(name); name == "" {
		panic(fmt.Errorf("table name cannot be empty"))
	}

	return func(j *Journal) {
		j.table = name
	}
}

// NewJournal returns a new PostgreSQL journal. If not otherwise specified
// using the URL() option, the "POSTGRES_JOURNAL" environment variable is used
// as the connection string.
func NewJournal(opts ...JournalOption) *Journal {
	j := &Journal{
		database:      "notify",
		table:         "journal",
		connectionURL: env.String("POSTGRES_JOURNAL"),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Pool returns the underlying connection pool, or nil if the Journal is not
// connected yet.
func (j *Journal) Pool() *pgxpool.Pool {
	return j.pool
}

// Connect connects to the PostgreSQL server and creates the database, the
// table and its indexes if they don't exist. Connect is called by Insert and
// Query.
func (j *Journal) Connect(ctx context.Context) error {
	return j.connectOnce(ctx)
}

func (j *Journal) connectOnce(ctx context.Context) error {
	var err error
	j.onceConnect.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err = j.connect(ctx); err != nil {
			return
		}

		if err = j.createDatabase(ctx); err != nil {
			return
		}

		if err = j.useDatabase(ctx); err != nil {
			return
		}

		if err = j.createTable(ctx); err != nil {
			return
		}

		if err = j.createIndexes(ctx); err != nil {
			return
		}
	})
	return err
}

func (j *Journal) connect(ctx context.Context) error {
	url := j.connectionURL
	if url == "" {
		return fmt.Errorf("missing connection string")
	}

	cfg, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	pool, err := pgxpool.Connect(ctx, cfg.ConnString())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w [url=%s]", err, url)
	}
	j.pool = pool

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}

func (j *Journal) createDatabase(ctx context.Context) error {
	var exists bool
	err := j.pool.QueryRow(ctx, "SELECT EXISTS (SELECT FROM pg_database WHERE datname = $1)", j.database).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check if %q database exists: %w", j.database, err)
	}

	if exists {
		return nil
	}

	if _, err := j.pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", j.database)); err != nil {
		return fmt.Errorf("create %q database: %w", j.database, err)
	}

	return nil
}

func (j *Journal) useDatabase(ctx context.Context) error {
	j.pool.Close()

	cfg, err := pgx.ParseConfig(j.connectionURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w [url=%s]", err, j.connectionURL)
	}

	purl, err := url.Parse(cfg.ConnString())
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	purl.Path = "/" + j.database

	pool, err := pgxpool.Connect(ctx, purl.String())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w [url=%s]", err, cfg.ConnString())
	}
	j.pool = pool

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}

func (j *Journal) createTable(ctx context.Context) error {
	if _, err := j.pool.Exec(ctx, tableSQL(j.table)); err != nil {
		return fmt.Errorf("create %q table: %w", j.table, err)
	}
	return nil
}

func (j *Journal) createIndexes(ctx context.Context) error {
	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	indexes := []struct {
		name   string
		fields []string
	}{
		{name: j.table + "_time", fields: []string{"time"}},
		{name: j.table + "_name_time", fields: []string{"name", "time"}},
	}

	for _, idx := range indexes {
		if _, err := tx.Exec(ctx, indexSQL(idx.name, j.table, idx.fields)); err != nil {
			return fmt.Errorf("create %q index: %w [fields=%v]", idx.name, err, idx.fields)
		}
	}

	return tx.Commit(ctx)
}

// Insert inserts records in a single transaction.
func (j *Journal) Insert(ctx context.Context, records ...journal.Record) error {
	if err := j.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		payload, err := journal.EncodePayload(r.Payload)
		if err != nil {
			return fmt.Errorf("encode %q payload: %w [id=%s]", r.Name, err, r.ID)
		}

		sql, args, err := squirrel.
			Insert(j.table).
			Columns("id", "name", "time", "payload").
			Values(r.ID, string(r.Name), r.Time.UnixNano(), payload).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert %q record: %w [id=%s]", r.Name, err, r.ID)
		}
	}

	return tx.Commit(ctx)
}

// Query returns the records that match q, sorted by time.
func (j *Journal) Query(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	if err := j.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	sql, args, err := j.buildQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := j.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []journal.Record
	for rows.Next() {
		var dr dbrecord
		if err := rows.Scan(&dr.ID, &dr.Name, &dr.Time, &dr.Payload); err != nil {
			return records, fmt.Errorf("scan row: %w", err)
		}

		r, err := dr.record()
		if err != nil {
			return records, err
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}

func (j *Journal) buildQuery(q journal.Query) (string, []any, error) {
	builder := squirrel.
		Select("id", "name", "time", "payload").
		From(j.table).
		OrderBy("time ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(q.Names) > 0 {
		builder = builder.Where(squirrel.Eq{"name": slice.Map(q.Names, func(n notification.Name) string {
			return string(n)
		})})
	}

	if !q.After.IsZero() {
		builder = builder.Where(squirrel.Gt{"time": q.After.UnixNano()})
	}

	if !q.Before.IsZero() {
		builder = builder.Where(squirrel.Lt{"time": q.Before.UnixNano()})
	}

	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build sql: %w", err)
	}

	return sql, args, nil
}

type dbrecord struct {
	ID      uuid.UUID
	Name    string
	Time    int64
	Payload []byte
}

func (dr dbrecord) record() (journal.Record, error) {
	payload, err := journal.DecodePayload(dr.Payload)
	if err != nil {
		return journal.Record{}, fmt.Errorf("decode %q payload: %w [id=%s]", dr.Name, err, dr.ID)
	}

	return journal.Record{
		ID:      dr.ID,
		Name:    notification.Name(dr.Name),
		Time:    time.Unix(0, dr.Time),
		Payload: payload,
	}, nil
}

func tableSQL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id UUID PRIMARY KEY NOT NULL,
		name VARCHAR(255) NOT NULL,
		time BIGINT NOT NULL,
		payload JSONB
	)`, name)
}

func indexSQL(name, table string, fields []string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, strings.Join(fields, ", "))
}

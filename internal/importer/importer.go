// Package importer moves CSV fixtures in and out of the database tables.
// A file is matched to its table by the part of its name before the first
// dot, so "genre_title.csv" feeds title_genres.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/lib/pq"
)

var (
	ErrNoAction    = errors.New("use --read, --write or --delete")
	ErrUnknownFile = errors.New("no table for file")
)

var tables = map[string]string{
	"titles":      "titles",
	"category":    "categories",
	"comments":    "comments",
	"genre_title": "title_genres",
	"genre":       "genres",
	"review":      "reviews",
	"users":       "users",
}

// columnAliases renames CSV headers that differ from the column names.
var columnAliases = map[string]map[string]string{
	"titles":       {"category": "category_id"},
	"reviews":      {"author": "author_id", "title": "title_id"},
	"comments":     {"author": "author_id", "review": "review_id"},
	"title_genres": {"title": "title_id", "genre": "genre_id"},
}

// Rows is the part of *sql.Rows the reader needs.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type Store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string) (Rows, error)
}

// SQLStore adapts *sql.DB to Store.
type SQLStore struct {
	DB *sql.DB
}

func (s SQLStore) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.DB.ExecContext(ctx, query, args...)
}

func (s SQLStore) Query(ctx context.Context, query string) (Rows, error) {
	return s.DB.QueryContext(ctx, query)
}

// Options selects what Run does with each file; write runs first, then
// read, then delete.
type Options struct {
	Read   bool
	Write  bool
	Delete bool
}

type Importer struct {
	store  Store
	dir    string
	out    io.Writer
	logger *slog.Logger
}

// New returns an importer reading CSV files from dir and printing table
// contents to out.
func New(store Store, dir string, out io.Writer, logger *slog.Logger) *Importer {
	return &Importer{store: store, dir: dir, out: out, logger: logger}
}

// TableFor maps a CSV file name to its table.
func TableFor(filename string) (string, error) {
	prefix := strings.SplitN(filepath.Base(filename), ".", 2)[0]
	table, ok := tables[prefix]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownFile, filename)
	}
	return table, nil
}

// Run applies opts to every file in order and stops at the first error.
func (im *Importer) Run(ctx context.Context, filenames []string, opts Options) error {
	if !opts.Read && !opts.Write && !opts.Delete {
		return ErrNoAction
	}
	for _, name := range filenames {
		table, err := TableFor(name)
		if err != nil {
			return err
		}
		if opts.Write {
			if err := im.Write(ctx, name, table); err != nil {
				return err
			}
		}
		if opts.Read {
			if err := im.Read(ctx, table); err != nil {
				return err
			}
		}
		if opts.Delete {
			if err := im.Delete(ctx, table); err != nil {
				return err
			}
		}
	}
	return nil
}

// Write inserts every row of the file. Rows that break a constraint or do
// not parse are logged and skipped.
func (im *Importer) Write(ctx context.Context, filename, table string) error {
	path := filepath.Join(im.dir, filepath.Base(filename))
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("there is no %s in %s: %w", filepath.Base(filename), im.dir, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		col := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if alias, ok := columnAliases[table][col]; ok {
			col = alias
		}
		columns[i] = col
	}
	r.FieldsPerRecord = len(columns)
	query := insertQuery(table, columns)

	im.logger.Info("writing csv", "file", path, "table", table)
	written, skipped := 0, 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			im.logger.Warn("skipping malformed row", "file", path, "line", line, "error", err)
			skipped++
			continue
		}

		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := im.store.ExecContext(ctx, query, args...); err != nil {
			if isRowError(err) {
				im.logger.Warn("skipping row", "file", path, "line", line, "error", err)
				skipped++
				continue
			}
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		written++
	}

	if err := im.resetSequence(ctx, table); err != nil {
		return err
	}
	im.logger.Info("csv written", "table", table, "rows", written, "skipped", skipped)
	return nil
}

// resetSequence moves the id sequence past imported ids so later inserts
// do not collide with them.
func (im *Importer) resetSequence(ctx context.Context, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence($1, 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
		pq.QuoteIdentifier(table),
	)
	if _, err := im.store.ExecContext(ctx, query, table); err != nil {
		return fmt.Errorf("reset %s id sequence: %w", table, err)
	}
	return nil
}

// Read prints the table's columns and rows.
func (im *Importer) Read(ctx context.Context, table string) error {
	rows, err := im.store.Query(ctx, "SELECT * FROM "+pq.QuoteIdentifier(table))
	if err != nil {
		return fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("read %s columns: %w", table, err)
	}

	tw := tabwriter.NewWriter(im.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Data in table %s:\n", table)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	count := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				cells[i] = v.String
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	im.logger.Info("table read", "table", table, "rows", count)
	return nil
}

// Delete removes every row of the table.
func (im *Importer) Delete(ctx context.Context, table string) error {
	if _, err := im.store.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(table)); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	im.logger.Info("table cleared", "table", table)
	return nil
}

func insertQuery(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

// isRowError reports errors caused by the row's data rather than the
// connection: integrity violations (class 23) and bad values (class 22).
func isRowError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	class := pqErr.Code.Class()
	return class == "23" || class == "22"
}

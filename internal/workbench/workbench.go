// Package workbench loads a record set into an in-memory SQLite table so
// it can be queried and cleaned with SQL before analysis.
package workbench

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

// Table is the relation name the records are exposed as.
const Table = "deliveries"

// Workbench owns one in-memory database holding the deliveries table.
type Workbench struct {
	db *sql.DB
}

// Result is the outcome of one statement. Queries return their rows;
// other statements return the refreshed table.
type Result struct {
	Set      *record.Set
	Mutated  bool
	Affected int64
}

// Open creates the database and loads set into it.
func Open(ctx context.Context, set *record.Set) (*Workbench, error) {
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	w := &Workbench{db: db}
	if err := w.load(ctx, set); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the database.
func (w *Workbench) Close() error { return w.db.Close() }

func (w *Workbench) load(ctx context.Context, set *record.Set) error {
	if set == nil || len(set.Columns) == 0 {
		// SQLite needs at least one column
		_, err := w.db.ExecContext(ctx, "CREATE TABLE "+Table+" (_empty)")
		return err
	}
	cols := make([]string, len(set.Columns))
	marks := make([]string, len(set.Columns))
	for i, c := range set.Columns {
		cols[i] = Quote(c)
		marks[i] = "?"
	}
	if _, err := w.db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", Table, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", Table, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	args := make([]any, len(set.Columns))
	for i, r := range set.Rows {
		for j, c := range set.Columns {
			args[j] = r.Get(c).Any()
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

// Exec runs a caller-supplied statement.
func (w *Workbench) Exec(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty query")
	}
	if returnsRows(query) {
		rows, err := w.db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		set, err := scan(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Set: set}, nil
	}
	res, err := w.db.ExecContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	n, _ := res.RowsAffected()
	set, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Set: set, Mutated: true, Affected: n}, nil
}

// Snapshot returns the current table contents as the committed record set.
func (w *Workbench) Snapshot(ctx context.Context) (*record.Set, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT * FROM "+Table)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return scan(rows)
}

func scan(rows *sql.Rows) (*record.Set, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	set := &record.Set{Columns: cols}
	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec := make(record.Record, len(cols))
		for i, c := range cols {
			rec[c] = record.Of(dest[i])
		}
		set.Rows = append(set.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return set, nil
}

var rowKeywords = []string{"select", "with", "pragma", "values", "explain"}

func returnsRows(query string) bool {
	q := strings.ToLower(stripLeadingComments(query))
	for _, k := range rowKeywords {
		if strings.HasPrefix(q, k) {
			return true
		}
	}
	return false
}

func stripLeadingComments(q string) string {
	for {
		q = strings.TrimSpace(q)
		switch {
		case strings.HasPrefix(q, "--"):
			if i := strings.IndexByte(q, '\n'); i >= 0 {
				q = q[i+1:]
				continue
			}
			return ""
		case strings.HasPrefix(q, "/*"):
			if i := strings.Index(q, "*/"); i >= 0 {
				q = q[i+2:]
				continue
			}
			return ""
		}
		return q
	}
}

// Quote renders a column name as an SQL identifier.
func Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

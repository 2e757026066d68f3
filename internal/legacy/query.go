package legacy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobportal/legacy-migrate/internal/config"
)

// Row is one legacy table row as a column-name -> value map. Values keep
// whatever Go type the driver produced (string, int64, time.Time, nil, ...).
type Row map[string]any

// ScrapeDateColumn is the date-event column in every <prefix>_dates table.
const ScrapeDateColumn = "ScrapeDate"

// DateEvents returns every scrape-date event joined with its listing's full
// row, ordered by listing id then scrape date. The ordering is part of the
// migration contract: re-running against the same data must submit records
// in the same order.
func (db *DB) DateEvents(ctx context.Context, src config.Source) ([]Row, error) {
	query := fmt.Sprintf(`
		SELECT j.*, d."ScrapeDate", d.id AS date_entry_id
		FROM %s d
		INNER JOIN %s j ON d.job_id = j.id
		ORDER BY j.id, d."ScrapeDate"`,
		src.DatesTable(), src.ListingsTable())

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query date events for %s: %w", src.Prefix, err)
	}
	defer rows.Close()
	return collectRows(rows)
}

// DatelessListings returns listings that have no entry in the dates table.
func (db *DB) DatelessListings(ctx context.Context, src config.Source) ([]Row, error) {
	query := fmt.Sprintf(`
		SELECT j.*
		FROM %s j
		LEFT JOIN %s d ON d.job_id = j.id
		WHERE d.id IS NULL`,
		src.ListingsTable(), src.DatesTable())

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dateless listings for %s: %w", src.Prefix, err)
	}
	defer rows.Close()
	return collectRows(rows)
}

// collectRows materializes a result set into column maps using the field
// descriptions, so per-source column sets need no dedicated structs.
func collectRows(rows pgx.Rows) ([]Row, error) {
	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

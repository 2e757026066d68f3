// Package migrate drives the legacy-to-portal migration: it pulls rows from
// the old scraper tables, maps them onto the portal schema, submits one
// record per (listing, scrape date) pair, and accumulates statistics.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/jobportal/legacy-migrate/internal/config"
	"github.com/jobportal/legacy-migrate/internal/legacy"
)

// RowSource yields legacy rows for one source. *legacy.DB implements it.
type RowSource interface {
	DateEvents(ctx context.Context, src config.Source) ([]legacy.Row, error)
	DatelessListings(ctx context.Context, src config.Source) ([]legacy.Row, error)
}

// Submitter sends one job record to the portal. *portal.Client implements it.
type Submitter interface {
	CreateJob(ctx context.Context, payload map[string]any) error
}

// Migrator owns one migration run.
type Migrator struct {
	registry      config.Registry
	rows          RowSource
	portal        Submitter
	logger        *slog.Logger
	progressEvery int
	now           func() time.Time
}

// New creates a Migrator. progressEvery controls how often a progress line is
// logged; zero disables progress logging.
func New(registry config.Registry, rows RowSource, portal Submitter, progressEvery int, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		registry:      registry,
		rows:          rows,
		portal:        portal,
		logger:        logger,
		progressEvery: progressEvery,
		now:           time.Now,
	}
}

// Run migrates every given source prefix in order. A failure in one source
// (including a panic) is logged and does not stop the remaining sources.
// Submission errors never abort anything; they are only counted.
func (m *Migrator) Run(ctx context.Context, prefixes []string) *Stats {
	stats := NewStats()
	for _, prefix := range prefixes {
		companyName, src, err := m.migrateSourceSafe(ctx, prefix)
		if err != nil {
			m.logger.Error("source migration failed", "source", prefix, "error", err)
			continue
		}
		stats.Add(companyName, src)
	}
	return stats
}

// migrateSourceSafe wraps migrateSource with panic recovery so an unexpected
// failure in one source cannot take down the whole run.
func (m *Migrator) migrateSourceSafe(ctx context.Context, prefix string) (companyName string, stats SourceStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return m.migrateSource(ctx, prefix)
}

func (m *Migrator) migrateSource(ctx context.Context, prefix string) (string, SourceStats, error) {
	var stats SourceStats

	src, err := m.registry.Lookup(prefix)
	if err != nil {
		return "", stats, err
	}

	m.logger.Info("migrating source", "source", prefix, "company", src.CompanyName)

	events, err := m.rows.DateEvents(ctx, src)
	if err != nil {
		return src.CompanyName, stats, err
	}
	dateless, err := m.rows.DatelessListings(ctx, src)
	if err != nil {
		return src.CompanyName, stats, err
	}

	seen := make(map[int64]bool)

	// Listings with scrape dates: one record per date event.
	for _, row := range events {
		fields := MapFields(src, row)

		scrapeDate, ok := resolveScrapeDate(row)
		if !ok {
			m.logger.Warn("invalid or missing ScrapeDate, skipping record",
				"source", prefix, "value", fmt.Sprint(row[legacy.ScrapeDateColumn]))
			continue
		}

		if err := m.submit(ctx, src, fields, scrapeDate); err != nil {
			stats.Errors++
			m.logger.Error("submit job failed", "source", prefix, "error", err)
		} else {
			stats.Dates++
		}

		if id, ok := listingID(row); ok && !seen[id] {
			seen[id] = true
			stats.Jobs++
		}

		if m.progressEvery > 0 && stats.Dates > 0 && stats.Dates%m.progressEvery == 0 {
			m.logger.Info("progress", "source", prefix, "jobs", stats.Jobs, "dates", stats.Dates)
		}
	}

	// Listings with no date events: one record each, dated from date_added
	// when it parsed, otherwise from today.
	for _, row := range dateless {
		fields := MapFields(src, row)

		scrapeDate := m.now()
		if iso, ok := fields[dateAddedField]; ok && iso != "" {
			if t, ok := ParseDate(iso); ok {
				scrapeDate = t
			}
		}

		if err := m.submit(ctx, src, fields, scrapeDate); err != nil {
			stats.Errors++
			m.logger.Error("submit job failed", "source", prefix, "error", err)
		} else {
			stats.Dates++
		}
		stats.Jobs++
	}

	m.logger.Info("source complete", "source", prefix, "company", src.CompanyName, "summary", stats.Summary())
	return src.CompanyName, stats, nil
}

// submit builds the create-job payload and posts it.
func (m *Migrator) submit(ctx context.Context, src config.Source, fields map[string]string, scrapeDate time.Time) error {
	payload := map[string]any{
		"company_name": src.CompanyName,
		"hidden":       config.IsHidden(src.CompanyName),
		"scrape_date":  scrapeDate.Format(isoDate),
	}
	for name, value := range fields {
		payload[name] = value
	}
	return m.portal.CreateJob(ctx, payload)
}

// resolveScrapeDate extracts the date event from a joined row. DATE columns
// arrive as time.Time; older tables stored the scrape date as text.
func resolveScrapeDate(row legacy.Row) (time.Time, bool) {
	switch v := row[legacy.ScrapeDateColumn].(type) {
	case time.Time:
		return v, true
	case string:
		return ParseDate(v)
	default:
		return time.Time{}, false
	}
}

// listingID extracts the listing primary key from a row.
func listingID(row legacy.Row) (int64, bool) {
	switch v := row["id"].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

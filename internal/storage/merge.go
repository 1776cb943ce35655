package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"storeledger/internal/core"
)

// readConcurrency caps how many source ledgers are read at once.
const readConcurrency = 4

// MergeReport summarises one merge run.
type MergeReport struct {
	SourceFiles int
	RowsCopied  int
	RowsSkipped int
}

// Merger copies visit rows from independently collected ledger files
// into the master repository. Collectors in the field produced two
// shapes: the full 7-column ledger and a reduced one carrying only
// (team, visit, items, total) with dollars as REAL. The merge unifies
// both into the 7-column master and recomputes total_items and the
// per-team running totals rather than trusting or dropping the source
// values. It stays best-effort append: visit numbers are not
// deduplicated across sources.
type Merger struct {
	master *Repository
}

func NewMerger(master *Repository) *Merger {
	return &Merger{master: master}
}

type sourceRow struct {
	team       string
	visit      int
	items      string
	totalCents int64
}

// MergeDir reads every *.db file under dir and appends its rows to the
// master ledger. Sources are read concurrently; master inserts are
// serialised. Merged rows enter the master already marked synced so the
// export worker does not replay them.
func (m *Merger) MergeDir(ctx context.Context, dir string) (MergeReport, error) {
	var report MergeReport

	files, err := filepath.Glob(filepath.Join(dir, "*.db"))
	if err != nil {
		return report, fmt.Errorf("scan source directory: %w", err)
	}
	sort.Strings(files)
	report.SourceFiles = len(files)
	if len(files) == 0 {
		slog.WarnContext(ctx, "No source ledgers found", "dir", dir)
		return report, nil
	}

	rowsByFile := make([][]sourceRow, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			rows, err := readSource(gctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			rowsByFile[i] = rows
			slog.InfoContext(gctx, "Read source ledger", "file", file, "rows", len(rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	var rows []sourceRow
	for _, r := range rowsByFile {
		rows = append(rows, r...)
	}
	// Running totals only make sense when each team's visits are applied
	// in visit-number order.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].team != rows[j].team {
			return rows[i].team < rows[j].team
		}
		return rows[i].visit < rows[j].visit
	})

	prevSpent := make(map[string]int64)
	for _, row := range rows {
		prev, ok := prevSpent[row.team]
		if !ok {
			// Seed from whatever the master already holds for the team.
			existing, found, err := m.master.MaxTotalSpent(ctx, row.team)
			if err != nil {
				return report, fmt.Errorf("seed running total for %s: %w", row.team, err)
			}
			if found {
				prev = existing
			}
		}

		v := core.Visit{
			TeamName:        row.team,
			VisitNumber:     row.visit,
			Items:           row.items,
			TotalCents:      row.totalCents,
			TotalItems:      countItems(row.items),
			TotalSpentCents: prev + row.totalCents,
		}
		if _, err := m.master.insert(ctx, v, SyncDone); err != nil {
			slog.WarnContext(ctx, "Skipping unmergeable row",
				"team", row.team, "visit_number", row.visit, "error", err)
			report.RowsSkipped++
			continue
		}
		prevSpent[row.team] = v.TotalSpentCents
		report.RowsCopied++
	}

	slog.InfoContext(ctx, "Merge complete",
		"sources", report.SourceFiles,
		"copied", report.RowsCopied,
		"skipped", report.RowsSkipped)
	return report, nil
}

// readSource loads all purchase rows from one source ledger, accepting
// both the cents schema and the legacy dollars-as-REAL schema.
func readSource(ctx context.Context, path string) ([]sourceRow, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open source ledger: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT team_name, visit_number, items, total_cents FROM purchases ORDER BY id`)
	if err == nil {
		defer rows.Close()
		return scanSourceRows(rows, false)
	}

	// Legacy collectors stored dollars in a REAL "total" column.
	rows, err = db.QueryContext(ctx,
		`SELECT team_name, visit_number, items, total FROM purchases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()
	return scanSourceRows(rows, true)
}

func scanSourceRows(rows *sql.Rows, legacyDollars bool) ([]sourceRow, error) {
	var out []sourceRow
	for rows.Next() {
		var r sourceRow
		if legacyDollars {
			var dollars float64
			if err := rows.Scan(&r.team, &r.visit, &r.items, &dollars); err != nil {
				return nil, fmt.Errorf("scan source row: %w", err)
			}
			r.totalCents = int64(math.Round(dollars * 100))
		} else {
			if err := rows.Scan(&r.team, &r.visit, &r.items, &r.totalCents); err != nil {
				return nil, fmt.Errorf("scan source row: %w", err)
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source rows: %w", err)
	}
	return out, nil
}

// countItems recovers the quantity sum from an items description like
// "rulers x3, toothpicks x10". Segments without a parsable quantity
// count as zero.
func countItems(items string) int {
	total := 0
	for _, segment := range strings.Split(items, ", ") {
		idx := strings.LastIndex(segment, " x")
		if idx < 0 {
			continue
		}
		qty, err := strconv.Atoi(segment[idx+2:])
		if err != nil || qty < 0 {
			continue
		}
		total += qty
	}
	return total
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"storeledger/internal/checkout"
	"storeledger/internal/core"
	"storeledger/internal/ledger"
	applog "storeledger/internal/log"
	"storeledger/internal/services"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// Menu drives the interactive top-level loop over a line-based input.
type Menu struct {
	catalog *core.Catalog
	store   ledger.Ledger
	service *services.CheckoutService
	logger  *applog.Logger
	in      *bufio.Scanner
	out     io.Writer
}

func NewMenu(catalog *core.Catalog, store ledger.Ledger, service *services.CheckoutService, logger *applog.Logger, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		store:   store,
		service: service,
		logger:  logger,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops until the user exits or input is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	for {
		headerColor.Fprintln(m.out, "\nMenu:")
		fmt.Fprintln(m.out, "1. New purchase")
		fmt.Fprintln(m.out, "2. View team summary")
		fmt.Fprintln(m.out, "3. Exit")

		choice, ok := m.prompt("Choose an option: ")
		if !ok {
			return m.scanErr()
		}

		switch choice {
		case "1":
			if err := m.newPurchase(ctx); err != nil {
				return err
			}
		case "2":
			if err := m.teamSummary(ctx); err != nil {
				return err
			}
		case "3":
			fmt.Fprintln(m.out, "Exiting program. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// newPurchase runs one checkout session and persists the result.
// Cancellation returns to the menu without side effects.
func (m *Menu) newPurchase(ctx context.Context) error {
	wf := checkout.NewWithScanner(m.catalog, m.store, m.in, m.out)

	visit, err := wf.Run(ctx)
	if errors.Is(err, checkout.ErrCancelled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	id, err := m.service.RecordVisit(ctx, visit)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	m.logger.InfoContext(ctx, "Visit recorded",
		applog.FieldVisitID, id,
		applog.FieldTeam, visit.TeamName,
		applog.FieldVisitNumber, visit.VisitNumber)

	successColor.Fprintf(m.out, "\nVisit #%d recorded for %s.\n", visit.VisitNumber, visit.TeamName)
	fmt.Fprintf(m.out, "Items bought (sum of quantities): %d\n", visit.TotalItems)
	fmt.Fprintf(m.out, "Total this visit: %s\n", core.FormatCents(visit.TotalCents))
	fmt.Fprintf(m.out, "Total spent so far: %s\n", core.FormatCents(visit.TotalSpentCents))
	return nil
}

// teamSummary prints every recorded visit for one team plus the
// running total from the latest visit.
func (m *Menu) teamSummary(ctx context.Context) error {
	team, ok := m.prompt("Enter team name to view: ")
	if !ok {
		return m.scanErr()
	}
	if team == "" {
		fmt.Fprintln(m.out, "No records found for this team.")
		return nil
	}

	visits, err := m.store.ListVisits(ctx, team)
	if err != nil {
		return fmt.Errorf("list visits for %s: %w", team, err)
	}
	if len(visits) == 0 {
		fmt.Fprintln(m.out, "No records found for this team.")
		return nil
	}

	headerColor.Fprintf(m.out, "\nSummary for %s:\n", team)
	for _, v := range visits {
		fmt.Fprintf(m.out, "Visit #%d → Items: %s | Total: %s\n",
			v.VisitNumber, v.Items, core.FormatCents(v.TotalCents))
	}
	fmt.Fprintf(m.out, "Overall total spent: %s\n", core.FormatCents(visits[len(visits)-1].TotalSpentCents))
	return nil
}

func (m *Menu) prompt(msg string) (string, bool) {
	fmt.Fprint(m.out, msg)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) scanErr() error {
	if err := m.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// RenderLeaderboard writes the cross-team totals table used by the
// report binary.
func RenderLeaderboard(out io.Writer, totals []core.TeamTotal) {
	warnColor.Fprintln(out, "\n=== TEAM SUMMARY (ALL DATABASES) ===")
	fmt.Fprintf(out, "%-20s %-10s %-10s\n", "Team Name", "Visits", "Total ($)")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	for _, t := range totals {
		fmt.Fprintf(out, "%-20s %-10d %-10.2f\n", t.TeamName, t.Visits, float64(t.SpentCents)/100)
	}
}

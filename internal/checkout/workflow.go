// Package checkout implements the interactive checkout workflow: one
// visit's item entry, typo correction, surcharge and running-total
// bookkeeping, ending in exactly one ledger record or none at all.
package checkout

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"storeledger/internal/core"
	"storeledger/internal/ledger"
)

// ErrCancelled reports that the user abandoned the visit. It is a normal
// control path: nothing was written and the visit number stays free.
var ErrCancelled = errors.New("purchase cancelled")

// State is one step of the checkout state machine.
type State int

const (
	StateAwaitingTeam State = iota
	StateAwaitingItem
	StateAwaitingQuantity
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAwaitingTeam:
		return "awaiting-team"
	case StateAwaitingItem:
		return "awaiting-item"
	case StateAwaitingQuantity:
		return "awaiting-quantity"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Workflow drives one checkout session over a line-based input. The
// ledger reader supplies visit numbering and running totals; the caller
// persists the returned visit.
type Workflow struct {
	catalog *core.Catalog
	reader  ledger.VisitReader
	in      *bufio.Scanner
	out     io.Writer
}

func New(catalog *core.Catalog, reader ledger.VisitReader, in io.Reader, out io.Writer) *Workflow {
	return &Workflow{
		catalog: catalog,
		reader:  reader,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// NewWithScanner shares an existing scanner with the caller, so a menu
// loop and the checkout read from one buffered stream.
func NewWithScanner(catalog *core.Catalog, reader ledger.VisitReader, in *bufio.Scanner, out io.Writer) *Workflow {
	return &Workflow{
		catalog: catalog,
		reader:  reader,
		in:      in,
		out:     out,
	}
}

// session is the mutable state accumulated while a visit is entered.
// Cancelling throws the whole session away.
type session struct {
	team        string
	visitNumber int
	lines       []core.Line
	// pending is the resolved item name awaiting a quantity.
	pending string
}

// Run executes the state machine until the visit completes or is
// cancelled. On completion it returns the fully computed visit record;
// on cancellation it returns ErrCancelled. Ledger read errors abort the
// session and propagate.
func (w *Workflow) Run(ctx context.Context) (core.Visit, error) {
	var sess session
	state := StateAwaitingTeam

	for {
		var err error
		switch state {
		case StateAwaitingTeam:
			state, err = w.stepTeam(ctx, &sess)
		case StateAwaitingItem:
			state, err = w.stepItem(&sess)
		case StateAwaitingQuantity:
			state, err = w.stepQuantity(&sess)
		case StateCompleted:
			return w.complete(ctx, &sess)
		case StateCancelled:
			fmt.Fprintln(w.out, "Purchase cancelled. Returning to main menu.")
			return core.Visit{}, ErrCancelled
		}
		if err != nil {
			return core.Visit{}, err
		}
	}
}

// stepTeam reads the team name and derives the next visit number from
// the ledger. Visit numbers are never supplied by the user and never
// incremented in memory: a cancelled session recomputes fresh next time.
func (w *Workflow) stepTeam(ctx context.Context, sess *session) (State, error) {
	for {
		team, ok := w.prompt("Enter team name: ")
		if !ok {
			return StateCancelled, w.scanErr()
		}
		if team == "" {
			fmt.Fprintln(w.out, "Team name cannot be empty.")
			continue
		}
		sess.team = team
		break
	}

	max, found, err := w.reader.MaxVisitNumber(ctx, sess.team)
	if err != nil {
		return StateCancelled, fmt.Errorf("max visit number for %s: %w", sess.team, err)
	}
	sess.visitNumber = 1
	if found {
		sess.visitNumber = max + 1
	}
	fmt.Fprintf(w.out, "\nAutomatically set Visit #%d for %s\n", sess.visitNumber, sess.team)
	fmt.Fprintln(w.out, "\nEnter items one by one (type 'done' when finished):")
	return StateAwaitingItem, nil
}

// stepItem reads one item token and resolves it against the catalog,
// falling back to a fuzzy suggestion for near misses.
func (w *Workflow) stepItem(sess *session) (State, error) {
	item, ok := w.prompt("Enter item (or 'done' to finish, 'exit' to cancel): ")
	if !ok {
		return StateCancelled, w.scanErr()
	}
	item = strings.ToLower(item)

	switch item {
	case "done":
		return StateCompleted, nil
	case "exit":
		return StateCancelled, nil
	}

	if w.catalog.Has(item) {
		sess.pending = item
		return StateAwaitingQuantity, nil
	}

	suggestion, found := core.Suggest(item, w.catalog.Names())
	if !found {
		fmt.Fprintln(w.out, "Item not found. Please check spelling.")
		fmt.Fprintf(w.out, "Available items: %s\n", strings.Join(w.catalog.Names(), ", "))
		return StateAwaitingItem, nil
	}

	answer, ok := w.prompt(fmt.Sprintf("Did you mean '%s'? (y/n): ", suggestion))
	if !ok {
		return StateCancelled, w.scanErr()
	}
	if strings.ToLower(answer) != "y" {
		fmt.Fprintln(w.out, "Let's try again. Please re-enter item name.")
		return StateAwaitingItem, nil
	}
	sess.pending = suggestion
	return StateAwaitingQuantity, nil
}

// stepQuantity reads a quantity for the pending item. Bad input
// re-prompts the same item; "exit" discards the entire visit, not just
// the current line.
func (w *Workflow) stepQuantity(sess *session) (State, error) {
	input, ok := w.prompt(fmt.Sprintf("Enter quantity for '%s' (or 'exit' to cancel): ", sess.pending))
	if !ok {
		return StateCancelled, w.scanErr()
	}
	if strings.ToLower(input) == "exit" {
		return StateCancelled, nil
	}

	qty, err := core.ParseQuantity(input)
	if err != nil {
		fmt.Fprintln(w.out, "Invalid quantity. Enter a whole number of at least 1.")
		return StateAwaitingQuantity, nil
	}

	price, err := w.catalog.PriceOf(sess.pending)
	if err != nil {
		// pending always comes from the catalog
		return StateCancelled, err
	}
	line := core.Line{Name: sess.pending, Quantity: qty, PriceCents: price}
	sess.lines = append(sess.lines, line)
	sess.pending = ""
	fmt.Fprintf(w.out, "Added '%s' x%d - %s\n", line.Name, line.Quantity, core.FormatCents(line.Subtotal()))
	return StateAwaitingItem, nil
}

// complete applies the surcharge, computes the running total and builds
// the final visit record.
func (w *Workflow) complete(ctx context.Context, sess *session) (core.Visit, error) {
	var totalCents int64
	totalItems := 0
	for _, l := range sess.lines {
		totalCents += l.Subtotal()
		totalItems += l.Quantity
	}

	if extra := core.Surcharge(sess.visitNumber); extra > 0 {
		fmt.Fprintf(w.out, "Extra %s charge applied for Visit #%d (beyond first %d visits).\n",
			core.FormatCents(extra), sess.visitNumber, core.SurchargeAfterVisits)
		totalCents += extra
	}

	prev, found, err := w.reader.MaxTotalSpent(ctx, sess.team)
	if err != nil {
		return core.Visit{}, fmt.Errorf("max total spent for %s: %w", sess.team, err)
	}
	if !found {
		prev = 0
	}

	return core.Visit{
		TeamName:        sess.team,
		VisitNumber:     sess.visitNumber,
		Items:           core.DescribeLines(sess.lines),
		TotalCents:      totalCents,
		TotalItems:      totalItems,
		TotalSpentCents: prev + totalCents,
	}, nil
}

// prompt writes the message and reads one trimmed line. ok is false when
// input is exhausted.
func (w *Workflow) prompt(msg string) (string, bool) {
	fmt.Fprint(w.out, msg)
	if !w.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(w.in.Text()), true
}

// scanErr surfaces a real read error; plain EOF counts as cancellation.
func (w *Workflow) scanErr() error {
	if err := w.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

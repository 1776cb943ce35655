package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SurchargeCents is the flat extra charge applied to a team's sixth and
// later visits. Visits 1-5 are free of it.
const SurchargeCents int64 = 500

// SurchargeAfterVisits is the number of free visits before the surcharge
// kicks in.
const SurchargeAfterVisits = 5

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTeam       = errors.New("empty team name")
)

type (
	// Line is one resolved item entry within a visit: a catalog name, a
	// positive quantity and the catalog unit price at entry time.
	Line struct {
		Name       string
		Quantity   int
		PriceCents int64
	}

	// Visit is one completed checkout for a team. It is written exactly
	// once and never mutated afterwards.
	Visit struct {
		ID          int64
		TeamName    string
		VisitNumber int
		// Items is the human-readable "name xQty" list, comma-joined.
		Items string
		// TotalCents is this visit's charge including any surcharge.
		TotalCents int64
		// TotalItems is the sum of quantities entered in this visit.
		TotalItems int
		// TotalSpentCents is the team's running total up to and
		// including this visit.
		TotalSpentCents int64
	}
)

// Subtotal returns the line's cost in cents.
func (l Line) Subtotal() int64 {
	return int64(l.Quantity) * l.PriceCents
}

func (l Line) String() string {
	return fmt.Sprintf("%s x%d", l.Name, l.Quantity)
}

// DescribeLines joins lines as stored in the ledger's items column.
func DescribeLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

// Surcharge returns the extra charge owed for the given visit number.
func Surcharge(visitNumber int) int64 {
	if visitNumber > SurchargeAfterVisits {
		return SurchargeCents
	}
	return 0
}

func (v Visit) Validate() error {
	if strings.TrimSpace(v.TeamName) == "" {
		return ErrEmptyTeam
	}
	if v.VisitNumber < 1 {
		return fmt.Errorf("visit number must be positive, got %d", v.VisitNumber)
	}
	if v.TotalCents < 0 {
		return ErrInvalidAmount
	}
	if v.TotalItems < 0 {
		return ErrInvalidQuantity
	}
	if v.TotalSpentCents < v.TotalCents {
		return fmt.Errorf("total spent %d below visit total %d", v.TotalSpentCents, v.TotalCents)
	}
	return nil
}

// ParseQuantity parses user input as a purchase quantity. Anything that
// is not a positive integer is rejected with ErrInvalidQuantity.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// Package sheets defines the port for exporting visits to an organiser
// spreadsheet.
package sheets

import (
	"context"

	"storeledger/internal/core"
)

// VisitAppender appends one visit row to the export sheet and returns a
// reference to the appended range.
type VisitAppender interface {
	AppendVisit(ctx context.Context, v core.Visit) (rowRef string, err error)
}

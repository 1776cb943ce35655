package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldTeam        = "team"
	FieldVisitNumber = "visit_number"
	FieldVisitID     = "id"
	FieldTotalCents  = "total_cents"
	FieldSpentCents  = "total_spent_cents"
	FieldItemCount   = "total_items"
	FieldDBPath      = "db_path"
	FieldSourceDir   = "source_dir"
	FieldSheetsRef   = "sheets_ref"
	FieldQueue       = "queue"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentMenu    = "menu"
	ComponentStorage = "storage"
	ComponentMerge   = "merge"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
)

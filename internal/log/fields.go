package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldKey        = "key"
	FieldBackend    = "backend"
	FieldTxID       = "transaction_id"
	FieldTxCount    = "transaction_count"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldCurrency   = "currency"
	FieldDate       = "date"
	FieldMonth      = "month"
	FieldYear       = "year"
	FieldSearch     = "search"
	FieldReminderID = "reminder_id"
	FieldAccountID  = "account_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentStore    = "store"
	ComponentSettings = "settings"
	ComponentTracker  = "tracker"
	ComponentCharts   = "charts"
	ComponentWorker   = "worker"
)

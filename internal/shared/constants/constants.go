package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableStaffProfiles       = "staff_profiles"
	TableOrganizationalUnits = "organizational_units"
	TableAssignments         = "assignments"
	TableAssignmentQueue     = "assignment_queue"
	TableEscalationEvents    = "escalation_events"

	// Manual override
	MinOverrideReasonLength = 10

	// Queue drainer
	DrainBatchSize       = 10
	DrainDebounceSeconds = 5

	// SLA classification
	SLAWarningThresholdPct = 75.0

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)

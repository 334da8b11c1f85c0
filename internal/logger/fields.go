package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields carried on the context logger through a call chain.
const (
	// FieldRequestID is the per-call request ID sent as X-Request-ID
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldCommand is the CLI command being executed
	FieldCommand = "command"

	// FieldEndpoint is the backend API path being called
	FieldEndpoint = "endpoint"

	// FieldMemeID is the meme a call operates on
	FieldMemeID = "meme_id"
)

// Metric fields attached through the Entry API.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation or HTTP status
	FieldStatus = "status"
)

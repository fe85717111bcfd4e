package ports

// Metrics receives business events worth counting. Labels are short snake_case
// codes, never user data.
type Metrics interface {
	RecordLogin(result string)
	RecordAuthFailure(reason string)
	RecordSessionsSuperseded(n int64)
	RecordSessionsSwept(n int64)
	RecordDeliveryConfirmed(outcome string)
	RecordStateViolation(violation string)
}

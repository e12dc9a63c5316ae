// Package sqlerr handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the Postgres driver and converts them
// into user-friendly application errors (e.g. a unique violation on the
// accounts default index becomes a Bad Request with a readable message).
package sqlerr

// Code is an application-level category for a database error.
type Code int

const (
	// Other covers errors that don't map to a known category.
	Other Code = iota

	// UniqueViolation: SQLSTATE 23505, duplicate key.
	UniqueViolation

	// ForeignKeyViolation: SQLSTATE 23503, referenced row missing.
	ForeignKeyViolation

	// NotNullViolation: SQLSTATE 23502, required column was null.
	NotNullViolation

	// CheckViolation: SQLSTATE 23514, CHECK constraint failed.
	CheckViolation
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is a normalized database error carrying the fields from
// pgconn.PgError that matter to the application layer.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As/Is chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

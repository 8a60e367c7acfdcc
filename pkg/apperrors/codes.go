package apperrors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeValidation       Code = "VALIDATION"
	CodeConstraint       Code = "CONSTRAINT_VIOLATION"
	CodeNotFound         Code = "NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeCascadeFailure   Code = "CASCADE_FAILURE"
	CodeInternal         Code = "INTERNAL"
)

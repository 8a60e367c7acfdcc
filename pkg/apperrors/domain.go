package apperrors

// Domain errors shared by the service and model layers.
var (
	ErrMessageAddressing = Validation("message must target exactly one of recipient or group")
	ErrSessionExpiry     = Validation("session expiry must be in the future")
	ErrBadCredentials    = Unauthorized("invalid credentials")
)

package constants

import "time"

// Context keys
const (
	ContextKeyIdentity = "identity"
)

// Token settings
const (
	TokenTTL     = time.Hour
	BearerPrefix = "Bearer "
)

// DateLayout is the calendar-date format accepted by task filters.
const DateLayout = "2006-01-02"

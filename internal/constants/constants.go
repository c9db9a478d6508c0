package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyTask    = "task"
	SessionCookieName = "workboard_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DefaultEmbedBaseURL is the Looker Studio embed endpoint.
const DefaultEmbedBaseURL = "https://lookerstudio.google.com/embed"

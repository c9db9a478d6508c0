package models

// UserRef is read-only reference data for a person that tasks are assigned
// to and time is logged by.
type UserRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

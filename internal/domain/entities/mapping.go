package entities

// Mapping links an email address to a chat user id, optionally with the
// display name used in meeting documents. Populated lazily on first
// successful directory lookup and upserted by email.
type Mapping struct {
	MeetingKey  string `json:"meeting_key"`
	ChannelID   string `json:"channel_id"`
	Email       string `json:"email"`
	ChatUserID  string `json:"chat_user_id"`
	DisplayName string `json:"display_name"`
}

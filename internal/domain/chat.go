package domain

// Role is the provider-facing speaker of a Turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// HistoryEntry is one caller-supplied conversation line, as the chat widget
// sends it.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InlineImage is a decoded binary image attached to a user turn.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Turn is a role-tagged entry passed to the completion provider.
type Turn struct {
	Role  Role
	Text  string
	Image *InlineImage
}

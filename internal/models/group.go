package models

// Group is a chat's activation state joined with its transport metadata
// and the number of listings it has produced.
type Group struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MemberCount  int    `json:"memberCount"`
	IsActive     bool   `json:"isActive"`
	LastActivity string `json:"lastActivity"`
	Description  string `json:"description,omitempty"`
	ItemsFound   int    `json:"itemsFound"`
}

// ConnectionStatus describes the WhatsApp session state.
type ConnectionStatus struct {
	IsConnected  bool   `json:"isConnected"`
	IsConnecting bool   `json:"isConnecting,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	LastSync     string `json:"lastSync,omitempty"`
}

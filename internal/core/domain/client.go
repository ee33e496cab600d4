package domain

// Client is a registered customer. Sales hold a weak reference to a client;
// deleting a client never cascades to its sales.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	AuditFields
}

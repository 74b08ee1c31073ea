package ws

// Envelope types pushed to clients.
const (
	TypeConnected  = "connected"
	TypeNewMessage = "new_message"
)

// Envelope is the wire frame for every server-to-client push.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ConnectedData acknowledges a successful handshake.
type ConnectedData struct {
	UserID uint `json:"userId"`
}

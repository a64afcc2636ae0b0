package domain

// ConnectionState is the backend reachability as last observed by a
// completed request.
type ConnectionState string

const (
	ConnectionUnknown ConnectionState = "unknown"
	ConnectionOnline  ConnectionState = "online"
	ConnectionOffline ConnectionState = "offline"
)

// ConnectionStatus is the value pushed to status listeners.
type ConnectionStatus struct {
	State ConnectionState `json:"status"`
	Error string          `json:"error,omitempty"`
}

// Equal reports whether both state and error message match.
func (s ConnectionStatus) Equal(o ConnectionStatus) bool {
	return s.State == o.State && s.Error == o.Error
}

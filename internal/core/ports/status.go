package ports

import "github.com/oaworkspace/oaclient/internal/core/domain"

// StatusListener receives connection status values.
type StatusListener func(domain.ConnectionStatus)

// StatusReporter is the single mutation point of the connection status.
type StatusReporter interface {
	Report(state domain.ConnectionState, errMsg string)
}

// StatusSource exposes the connection status to readers.
type StatusSource interface {
	Subscribe(listener StatusListener) (unsubscribe func())
	Current() domain.ConnectionStatus
}

package ports

// Server defines the lifecycle of a long-running ingestion or API surface
type Server interface {
	// Start starts the server, returning once it is listening
	Start() error

	// Stop shuts the server down
	Stop() error
}

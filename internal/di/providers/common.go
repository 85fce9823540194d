package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// Version is reported in the OpenAPI document. Override at build time with
// -ldflags "-X github.com/traveljournal/journal-server/internal/di/providers.Version=v1.2.3".
var Version = "dev"

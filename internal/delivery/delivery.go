// Package delivery defines the contract every transport (HTTP, worker, ...)
// fulfils so the application entry point can start them uniformly.
package delivery

import (
	"context"
	"time"
)

// DefaultShutdownTimeout bounds how long a delivery may take to stop.
const DefaultShutdownTimeout = 10 * time.Second

// Delivery is a long-running transport serving the application.
type Delivery interface {
	// Serve blocks, serving requests until the delivery is stopped.
	Serve(ctx context.Context) error
}

package worker

import (
	"context"
)

// Worker - interface all workers implement
type Worker interface {
	// Start runs the worker until it is stopped
	Start(ctx context.Context) error

	// Stop signals the worker to finish
	Stop() error

	// Name returns the worker name
	Name() string
}

// Package delivery holds the transports that expose the usecases.
package delivery

import "context"

// Delivery is a transport started by the application once all providers are wired.
type Delivery interface {
	Serve(ctx context.Context) error
}

// Package client talks to a running ipactl daemon over the
// ipa.v1.Diagnostics service.
//
//	c, err := client.Dial(client.DefaultSocketPath())
//	c, err := client.Dial("127.0.0.1:50061")
package client

import (
	"context"
	"errors"
	"io"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/server/pb"
)

// ErrNotFound is returned when the daemon has no endpoint for a
// handle.
var ErrNotFound = errors.New("not found")

// Client queries and drives a daemon.
type Client interface {
	io.Closer

	// Status returns the attach record and every allocated endpoint.
	Status(ctx context.Context) (pb.Status, error)
	Endpoint(ctx context.Context, handle int) (ipa.EndpointStatus, error)

	SuspendResource(ctx context.Context, resource string) error
	ResumeResource(ctx context.Context, resource string) error
}

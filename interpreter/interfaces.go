// Package interpreter contains the ports to the hardware and the
// endpoint journal, and the executor for reified actions. This is
// the only package that performs actual I/O.
package interpreter

import (
	"context"
	"io"
	"time"

	"github.com/frobware/go-ipa"
)

// Registers writes symbolic registers through the register HAL. The
// HAL owns the bit layout of fields.
type Registers interface {
	// Write writes fields to reg. index is the pipe or resource
	// type n, or ipa.NoIndex for global registers.
	Write(ctx context.Context, reg ipa.Register, index int, fields any) error
}

// Transport drives GSI channels.
type Transport interface {
	StartChannel(ctx context.Context, ch int) error
	// StopChannel makes a single stop attempt. It returns
	// ipa.ErrTryAgain or ipa.ErrTimedOut when the channel still
	// has descriptors in flight.
	StopChannel(ctx context.Context, ch int) error
	ResetChannel(ctx context.Context, ch int) error
	SetChannelMode(ctx context.Context, ch int, mode ipa.ChannelMode) error
	// ChannelEmpty reports whether the channel has no pending
	// completions.
	ChannelEmpty(ctx context.Context, ch int) (bool, error)
}

// DMAInjector issues small DMA tasks to flush stalled pipes on
// pre-4.0 hardware.
type DMAInjector interface {
	InjectDMATask(ctx context.Context, bytes int) error
}

// PowerDomain votes for and against the IPA clock.
type PowerDomain interface {
	Vote(ctx context.Context) error
	Unvote(ctx context.Context) error
}

// Prober reads the hardware identity at attach.
type Prober interface {
	HWType(ctx context.Context) (ipa.HWType, error)
}

// Hardware combines every hardware port.
type Hardware interface {
	Registers
	Transport
	DMAInjector
	PowerDomain
	Prober
}

// EndpointWriter journals endpoint snapshots.
type EndpointWriter interface {
	SaveEndpoint(ctx context.Context, status ipa.EndpointStatus) error
	// DeleteEndpoint returns store.ErrNotFound if no endpoint is
	// journalled for pipe.
	DeleteEndpoint(ctx context.Context, pipe int) error
}

// EndpointReader reads endpoint snapshots.
type EndpointReader interface {
	// GetEndpoint returns store.ErrNotFound if no endpoint is
	// journalled for pipe.
	GetEndpoint(ctx context.Context, pipe int) (ipa.EndpointStatus, error)
	ListEndpoints(ctx context.Context) ([]ipa.EndpointStatus, error)
}

// EndpointStore combines endpoint journal operations.
type EndpointStore interface {
	EndpointWriter
	EndpointReader
}

// AttachRecord describes the most recent attach.
type AttachRecord struct {
	Revision   ipa.Revision
	HWType     ipa.HWType
	Mode       ipa.HWMode
	Session    string
	AttachedAt time.Time
}

// AttachStore records attaches.
type AttachStore interface {
	SaveAttach(ctx context.Context, rec AttachRecord) error
	// LatestAttach returns store.ErrNotFound before the first
	// attach.
	LatestAttach(ctx context.Context) (AttachRecord, error)
}

// Store combines endpoint and attach store operations.
type Store interface {
	io.Closer
	EndpointStore
	AttachStore
	Transactional
}

// Transactional provides atomic execution of store operations.
// The callback receives a Store that participates in the transaction.
// If the callback returns nil, the transaction commits.
// If the callback returns an error, the transaction rolls back.
type Transactional interface {
	RunInTransaction(ctx context.Context, fn func(Store) error) error
}

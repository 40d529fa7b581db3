// Package cli implements the fieldsync command tree. Commands are thin: they
// parse flags and delegate to Cli, which talks to the data service and the
// sync engine.
package cli

import (
	"context"
	"time"

	"github.com/iudanet/fieldsync/internal/client/config"
	"github.com/iudanet/fieldsync/internal/client/data"
	"github.com/iudanet/fieldsync/internal/client/iocli"
	clientsync "github.com/iudanet/fieldsync/internal/client/sync"
)

//go:generate moq -out engine_mock_test.go . Engine MetadataReader

// Engine is the part of the sync engine the CLI drives
type Engine interface {
	RunPass(ctx context.Context) (*clientsync.PassReport, error)
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
	Events() <-chan clientsync.Event
}

// MetadataReader reads sync bookkeeping from the local store
type MetadataReader interface {
	GetLastSyncTime(ctx context.Context) (time.Time, error)
}

// Cli executes commands against the client components
type Cli struct {
	io          iocli.IO
	dataService data.Service
	engine      Engine
	metadata    MetadataReader
	cfg         *config.Config
}

// New creates a Cli
func New(io iocli.IO, dataService data.Service, engine Engine, metadata MetadataReader) *Cli {
	return &Cli{
		io:          io,
		dataService: dataService,
		engine:      engine,
		metadata:    metadata,
	}
}

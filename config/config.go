package config

import (
	"github.com/eximware/erp-data-api/log"
)

// Config is the engine-facing view of the endpoint configuration. The
// engine itself carries no ambient state; everything it needs arrives
// through this interface at construction time.
type Config interface {
	DefaultLimit() int
	MaxLimit() int
	ReferenceSamples() bool
	Naming() NamingConvention
	Logger() log.Logger
}

const (
	// DefaultResultLimit bounds searches when the caller does not ask for a
	// specific page size.
	DefaultResultLimit = 20

	// MaxResultLimit is the hard ceiling for a single read; counting
	// workflows use it to bound the scan.
	MaxResultLimit = 10000
)

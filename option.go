package pinetwork

import (
	"net/http"
	"time"

	"github.com/vitwit/pinetwork/config"
	"github.com/vitwit/pinetwork/logger"
	"github.com/vitwit/pinetwork/metrics"
	"github.com/vitwit/pinetwork/settlement"
)

type Option func(*PiNetwork)

// WithConfig supplies the configuration instead of loading it from the
// environment.
func WithConfig(cfg *config.Config) Option {
	return func(p *PiNetwork) {
		p.config = cfg
	}
}

func WithLogger(l logger.Logger) Option {
	return func(p *PiNetwork) {
		p.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *PiNetwork) {
		p.metrics = r
	}
}

// WithTimeout overrides the configured request timeout of the platform API.
func WithTimeout(t time.Duration) Option {
	return func(p *PiNetwork) {
		p.timeout = t
	}
}

// WithHTTPClient sets the client used for platform API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *PiNetwork) {
		p.httpClient = c
	}
}

// WithLedgerFactory replaces the Horizon-backed ledger.
func WithLedgerFactory(f settlement.LedgerFactory) Option {
	return func(p *PiNetwork) {
		p.newLedger = f
	}
}

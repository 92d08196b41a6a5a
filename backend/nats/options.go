package nats

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// CenterOption is an option for a Center.
type CenterOption func(*Center)

// URL returns a CenterOption that sets the connection URL to the NATS server.
// If no URL is specified, the environment variable "NATS_URL" is used, and if
// that is empty too, nats.DefaultURL.
func URL(url string) CenterOption {
	return func(c *Center) {
		c.url = url
	}
}

// Conn returns a CenterOption that provides the underlying *nats.Conn for the
// Center. A provided connection is not closed by Center.Close.
func Conn(conn *nats.Conn) CenterOption {
	return func(c *Center) {
		c.conn = conn
	}
}

// Options returns a CenterOption that adds options for nats.Connect.
func Options(opts ...nats.Option) CenterOption {
	return func(c *Center) {
		c.natsOpts = append(c.natsOpts, opts...)
	}
}

// SubjectPrefix returns a CenterOption that sets the prefix of the NATS
// subjects that notifications are published to. Defaults to "notify.".
// The prefix must end with a "." for observers without a name filter.
//
// Can also be set with the "NATS_SUBJECT_PREFIX" environment variable.
func SubjectPrefix(prefix string) CenterOption {
	return func(c *Center) {
		c.prefix = prefix
	}
}

// Logger returns a CenterOption that sets the logger of a Center.
func Logger(logger *zap.Logger) CenterOption {
	return func(c *Center) {
		c.logger = logger
	}
}

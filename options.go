package contentd

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	solrURL       string
	httpClient    *http.Client
	searchTimeout time.Duration

	keyPrefix string
	logger    *zap.Logger
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSolr enables Search against the Solr instance at baseURL.
func WithSolr(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.solrURL = baseURL
	})
}

// WithHTTPClient sets the HTTP client used for Solr requests.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithSearchTimeout sets the per-request search budget.
// Default: 5000ms.
func WithSearchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchTimeout = d
	})
}

// WithKeyPrefix sets the key namespace shared with the contentd server.
// Default: "contentd:". The prefix is process-wide.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

package cinedex

import (
	"github.com/prometheus/client_golang/prometheus"
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
	uri      string
	database string

	movies         string
	comments       string
	embeddedMovies string

	voyageKey string
	embedder  Embedder

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		database:       "sample_mflix",
		movies:         "movies",
		comments:       "comments",
		embeddedMovies: "embedded_movies",
	}
}

// WithMongo sets the connection string and database.
func WithMongo(uri, database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.uri = uri
		if database != "" {
			c.database = database
		}
	})
}

// WithCollections overrides the collection names. Empty names keep the defaults.
func WithCollections(movies, comments, embeddedMovies string) Option {
	return optionFunc(func(c *clientConfig) {
		if movies != "" {
			c.movies = movies
		}
		if comments != "" {
			c.comments = comments
		}
		if embeddedMovies != "" {
			c.embeddedMovies = embeddedMovies
		}
	})
}

// WithVoyage enables vector search through the Voyage AI API.
func WithVoyage(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.voyageKey = apiKey
	})
}

// WithEmbedder sets a custom query embedder. It takes precedence over WithVoyage.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

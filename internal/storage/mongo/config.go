package mongo

import (
	"net/url"
	"strings"
	"time"
)

// Config holds MongoDB connection settings
type Config struct {
	// URI is the MongoDB connection string (e.g., mongodb://localhost:27017/gamehub)
	URI string

	// Database overrides the database named in the URI path.
	// If both are empty, DefaultDatabase is used.
	Database string

	// ConnectTimeout bounds the initial connect and ping
	ConnectTimeout time.Duration
}

// DefaultDatabase is used when neither Config.Database nor the URI names one
const DefaultDatabase = "gamehub"

// DefaultConfig returns sensible defaults for MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017/gamehub",
		ConnectTimeout: 10 * time.Second,
	}
}

// databaseName resolves which database to use
func (c Config) databaseName() string {
	if c.Database != "" {
		return c.Database
	}
	if u, err := url.Parse(c.URI); err == nil {
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultDatabase
}

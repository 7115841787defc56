package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Outbound graph queries must
	// always run under a finite timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "method-recommender/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GraphDBConfig holds the connection settings for the SPARQL endpoint.
type GraphDBConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the triple store root (e.g. "http://127.0.0.1:7200").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Repository is the repository identifier appended to BaseURL.
	Repository string `json:"repository" yaml:"repository"`

	// Username and Password enable HTTP basic auth when both are set.
	// They are normally loaded from .secrets/, not from the config file.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// UserStoreConfig holds settings for the user/saved-search store.
type UserStoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins is the CORS allow-list for browser frontends.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	GraphDB GraphDBConfig   `json:"graphdb" yaml:"graphdb"`
	Users   UserStoreConfig `json:"users" yaml:"users"`
	Server  ServerConfig    `json:"server" yaml:"server"`
}

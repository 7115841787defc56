// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/method-recommender/internal/secrets"
	"github.com/pdiddy/method-recommender/pkg/types"
)

// appConfig assembles the full configuration from viper (config file,
// env) and the secrets directory. Secrets win over config-file
// credentials only when the config file leaves them unset.
func appConfig() types.AppConfig {
	cfg := types.AppConfig{
		GraphDB: types.GraphDBConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("graphdb.timeout"),
				UserAgent: viper.GetString("graphdb.user_agent"),
			},
			BaseURL:    viper.GetString("graphdb.base_url"),
			Repository: viper.GetString("graphdb.repository"),
			Username:   viper.GetString("graphdb.username"),
			Password:   viper.GetString("graphdb.password"),
		},
		Users: types.UserStoreConfig{
			DataDir: viper.GetString("users.data_dir"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
	}

	if cfg.GraphDB.Username == "" {
		cfg.GraphDB.Username = loadedSecrets[secrets.GraphDBUsernameKey]
	}
	if cfg.GraphDB.Password == "" {
		cfg.GraphDB.Password = loadedSecrets[secrets.GraphDBPasswordKey]
	}
	return cfg
}

// Package config provides functionality for managing configuration
// options for the application using command-line flags and environment
// variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string

	// IdentityURL is the base URL of the external identity provider.
	IdentityURL string

	// AdminGroup is the provider group granting operator access.
	AdminGroup string

	// TokenFile is the path of the local session token file.
	TokenFile string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.IdentityURL, "i", "http://localhost:9090", "identity provider base URL")
	flag.StringVar(&options.AdminGroup, "g", "catalog-admins", "admin group name")
	flag.StringVar(&options.TokenFile, "t", "session.json", "path to the session token file")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if identityURL := os.Getenv("IDENTITY_URL"); identityURL != "" {
		options.IdentityURL = identityURL
	}
	if adminGroup := os.Getenv("ADMIN_GROUP"); adminGroup != "" {
		options.AdminGroup = adminGroup
	}

	return options
}

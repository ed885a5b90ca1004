package config

import (
	"fmt"
	"os"
	"strings"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server ServerConfig
	Engine EngineConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Engine: engine}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// EngineConfig carries the tunable pieces of the companion engine.
type EngineConfig struct {
	// CrisisHotline is the number named in crisis referral text.
	CrisisHotline string
	// WelcomeMessage overrides the companion's opening turn when set.
	WelcomeMessage string
}

func loadEngineConfig() (EngineConfig, error) {
	return EngineConfig{
		CrisisHotline:  getEnvOrDefault("HAVEN_CRISIS_HOTLINE", "988"),
		WelcomeMessage: strings.TrimSpace(os.Getenv("HAVEN_WELCOME_MESSAGE")),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

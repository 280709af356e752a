package config

import (
	"os"
	"strconv"
)

type Config struct {
	Host         string
	Port         int
	WSPort       int // 0 disables the WebSocket gateway
	Store        string
	UsersFile    string
	DBPath       string
	WriteTimeout int // seconds
}

func Load() *Config {
	cfg := &Config{
		Host:         "127.0.0.1",
		Port:         5001,
		WSPort:       0,
		Store:        "file",
		UsersFile:    "users.txt",
		DBPath:       "linechat.db",
		WriteTimeout: 30,
	}

	if host := os.Getenv("LINECHAT_HOST"); host != "" {
		cfg.Host = host
	}

	if portStr := os.Getenv("LINECHAT_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}

	if portStr := os.Getenv("LINECHAT_WS_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.WSPort = port
		}
	}

	if backend := os.Getenv("LINECHAT_STORE"); backend != "" {
		cfg.Store = backend
	}

	if path := os.Getenv("LINECHAT_USERS_FILE"); path != "" {
		cfg.UsersFile = path
	}

	if path := os.Getenv("LINECHAT_DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if timeoutStr := os.Getenv("LINECHAT_WRITE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}

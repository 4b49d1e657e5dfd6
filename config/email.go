package config

import (
	"os"
	"strconv"
)

type EmailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	UseTLS      bool
	FromAddress string
}

func LoadEmailConfig() EmailConfig {

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}

	useTLS := true
	if v, ok := parseBool(os.Getenv("SMTP_TLS")); ok {
		useTLS = v
	}

	return EmailConfig{
		Host:        os.Getenv("SMTP_SERVER"),
		Port:        port,
		Username:    os.Getenv("SMTP_USER"),
		Password:    os.Getenv("SMTP_PASS"),
		UseTLS:      useTLS,
		FromAddress: os.Getenv("SMTP_FROM"),
	}
}

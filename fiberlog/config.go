package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// Skip - запросы, которые не логируются (например /metrics)
	Skip []string
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagRoute,
		TagUserID,
		TagOrgID,
		TagError,
	},
	Skip: []string{"/metrics", "/health"},
}

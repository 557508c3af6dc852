package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMongo()
	c.normalizeArchive()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Branding.PrimaryLogo) != "" {
		if c.Branding.PrimaryLogo, err = expandPath(c.Branding.PrimaryLogo); err != nil {
			return fmt.Errorf("branding.primary_logo: %w", err)
		}
	}
	if strings.TrimSpace(c.Branding.AvatarLogo) != "" {
		if c.Branding.AvatarLogo, err = expandPath(c.Branding.AvatarLogo); err != nil {
			return fmt.Errorf("branding.avatar_logo: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeMongo() {
	c.Mongo.URI = strings.TrimSpace(c.Mongo.URI)
	if c.Mongo.URI == "" {
		c.Mongo.URI = strings.TrimSpace(os.Getenv("SCRIBE_MONGO_URI"))
	}
	if c.Mongo.ConnectTimeout <= 0 {
		c.Mongo.ConnectTimeout = defaultConnectTimeout
	}
	if c.Mongo.OperationTimeout <= 0 {
		c.Mongo.OperationTimeout = defaultOperationTimeout
	}
}

func (c *Config) normalizeArchive() {
	c.Archive.AssistantName = strings.TrimSpace(c.Archive.AssistantName)
	if c.Archive.AssistantName == "" {
		c.Archive.AssistantName = defaultAssistantName
	}
	c.Archive.Timezone = strings.TrimSpace(c.Archive.Timezone)
	if c.Archive.Timezone == "" {
		c.Archive.Timezone = defaultTimezone
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMongo(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMongo() error {
	if c.Mongo.URI == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/scribe/config.toml"
		}
		return fmt.Errorf("mongo.uri is required. Set SCRIBE_MONGO_URI env var or edit %s (create with 'scribe config init')", defaultPath)
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database must be set")
	}
	if c.Mongo.MetadataCollection == "" {
		return errors.New("mongo.metadata_collection must be set")
	}
	if c.Mongo.SnapshotCollection == "" {
		return errors.New("mongo.snapshot_collection must be set")
	}
	if c.Mongo.GridFSPrefix == "" {
		return errors.New("mongo.gridfs_prefix must be set")
	}
	if c.Mongo.MetadataCollection == c.Mongo.SnapshotCollection {
		return errors.New("mongo.metadata_collection and mongo.snapshot_collection must differ")
	}
	return nil
}

func (c *Config) validateArchive() error {
	if _, err := time.LoadLocation(c.Archive.Timezone); err != nil {
		return fmt.Errorf("archive.timezone: unknown timezone %q", c.Archive.Timezone)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

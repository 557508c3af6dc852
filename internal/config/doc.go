// Package config loads, validates, and normalizes scribe's TOML
// configuration: MongoDB connection settings for the blob and metadata
// stores, archival behavior (assistant name, timezone), branding assets,
// notification and logging options.
package config

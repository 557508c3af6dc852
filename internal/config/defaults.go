package config

const (
	defaultDatabase           = "scribe"
	defaultMetadataCollection = "pdf_metadata"
	defaultSnapshotCollection = "conversations"
	defaultGridFSPrefix       = "pdfs"
	defaultConnectTimeout     = 10
	defaultOperationTimeout   = 30
	defaultAssistantName      = "SofIA"
	defaultTimezone           = "America/Argentina/Buenos_Aires"
	defaultStateDir           = "~/.local/share/scribe"
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Mongo: Mongo{
			Database:           defaultDatabase,
			MetadataCollection: defaultMetadataCollection,
			SnapshotCollection: defaultSnapshotCollection,
			GridFSPrefix:       defaultGridFSPrefix,
			ConnectTimeout:     defaultConnectTimeout,
			OperationTimeout:   defaultOperationTimeout,
		},
		Archive: Archive{
			AssistantName: defaultAssistantName,
			Timezone:      defaultTimezone,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

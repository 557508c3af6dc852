package render

import (
	"log/slog"
	"os"

	"scribe/internal/logging"
)

// LoadAssets reads the configured logo files. A missing or unreadable file
// yields an empty buffer and a warning; callers always get usable Assets.
func LoadAssets(primaryPath, avatarPath string, logger *slog.Logger) Assets {
	return Assets{
		PrimaryLogo: loadAsset(primaryPath, logger),
		AvatarLogo:  loadAsset(avatarPath, logger),
	}
}

func loadAsset(path string, logger *slog.Logger) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Warn("logo unavailable, document will render without it",
				logging.String("path", path), logging.Error(err))
		}
		return nil
	}
	return data
}

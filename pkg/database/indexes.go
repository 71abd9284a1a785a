package database

import (
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// searchIndexes speed up substring search on the folded search column.
// They need the pg_trgm extension.
var searchIndexes = []string{
	"CREATE EXTENSION IF NOT EXISTS pg_trgm",
	"CREATE INDEX IF NOT EXISTS idx_instruments_search_text_trgm ON instruments USING GIN (search_text gin_trgm_ops)",
}

// SearchIndexes creates the trigram index used by listing search. Failures
// are logged and skipped: search still works without the index.
func SearchIndexes(db *gorm.DB) int {
	created := 0
	for _, stmt := range searchIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			logger.GetLogger().Warn("Failed to create search index",
				zap.String("statement", stmt),
				zap.Error(err),
			)
			return created
		}
		created++
	}

	logger.GetLogger().Info("Search indexes ready", zap.Int("statements", created))
	return created
}

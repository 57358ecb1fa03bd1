package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnableDBTracing registers the otelgorm plugin so every GORM query emits
// a span under the active request span. Query variables are stripped from
// the recorded statements; weights and prices never reach the collector.
func EnableDBTracing(db *gorm.DB, cfg Config, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Telemetry disabled, skipping GORM tracing")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("freshfold"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return fmt.Errorf("failed to register GORM tracing plugin: %w", err)
	}

	logger.Info("GORM query tracing enabled")
	return nil
}

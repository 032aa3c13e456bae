package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gradecv/gradecv/internal/config"
)

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "gradecv"})
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug), "dev enables debug level")

	prod := SetupLogger(config.Config{AppEnv: "prod", OTELServiceName: "gradecv"})
	assert.False(t, prod.Enabled(t.Context(), slog.LevelDebug), "prod keeps debug off")
}

func TestSetupTracing_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, shutdown)
}

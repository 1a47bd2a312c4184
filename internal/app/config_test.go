package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("graph path is required", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.ErrorContains(t, err, "GraphPath is a required configuration field")
	})

	t.Run("relay namespace defaults to root", func(t *testing.T) {
		cfg, err := NewConfig(Config{GraphPath: "g", RelayURL: "https://status.example.com"})
		require.NoError(t, err)
		require.Equal(t, "/", cfg.RelayNamespace)
	})

	t.Run("namespace untouched without relay", func(t *testing.T) {
		cfg, err := NewConfig(Config{GraphPath: "g"})
		require.NoError(t, err)
		require.Empty(t, cfg.RelayNamespace)
	})

	t.Run("negative port", func(t *testing.T) {
		_, err := NewConfig(Config{GraphPath: "g", StatusPort: -1})
		require.Error(t, err)
	})
}

package statekit_sdk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Statekit/statekit_sdk_go/pkg/resource"
	"github.com/Statekit/statekit_sdk_go/pkg/statekit_sdk"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STATEKIT_RUNTIME_MODE", "")
	t.Setenv("STATEKIT_API_URL", "")
	t.Setenv("STATEKIT_MOCK_SEED", "")
}

func TestNewFromEnvDefaultsToMock(t *testing.T) {
	clearEnv(t)

	app, mode, err := statekit_sdk.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, statekit_sdk.ModeMock, mode)
	assert.NotNil(t, app)
}

func TestNewFromEnvAutoPrefersHTTP(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATEKIT_API_URL", "http://localhost:8787")

	_, mode, err := statekit_sdk.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, statekit_sdk.ModeHTTP, mode)
}

func TestNewFromEnvHTTPRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATEKIT_RUNTIME_MODE", "http")

	_, _, err := statekit_sdk.NewFromEnv()
	assert.ErrorContains(t, err, "STATEKIT_API_URL")
}

func TestNewFromEnvUnsupportedMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATEKIT_RUNTIME_MODE", "carrier-pigeon")

	_, _, err := statekit_sdk.NewFromEnv()
	assert.ErrorContains(t, err, "unsupported")
}

func TestNewFromEnvMockSeed(t *testing.T) {
	clearEnv(t)
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
users:
  - id: u-1
    name: Ada
`), 0o600))
	t.Setenv("STATEKIT_RUNTIME_MODE", "mock")
	t.Setenv("STATEKIT_MOCK_SEED", seedPath)

	app, mode, err := statekit_sdk.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, statekit_sdk.ModeMock, mode)

	model, err := app.RegisterModel(resource.ModelDef{Name: "user"})
	require.NoError(t, err)
	records, err := model.GetAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u-1", records[0].ID())
}

func TestNewFromEnvMockSeedMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATEKIT_RUNTIME_MODE", "mock")
	t.Setenv("STATEKIT_MOCK_SEED", filepath.Join(t.TempDir(), "nope.yaml"))

	_, _, err := statekit_sdk.NewFromEnv()
	assert.ErrorContains(t, err, "load mock seed")
}

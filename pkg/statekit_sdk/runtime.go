package statekit_sdk

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/Statekit/statekit_sdk_go/internal/seed"
	"github.com/Statekit/statekit_sdk_go/pkg/resource"
	"github.com/Statekit/statekit_sdk_go/pkg/resource/mock"
)

const (
	ModeAuto = "auto"
	ModeHTTP = "http"
	ModeMock = "mock"
)

type config struct {
	Mode     string `env:"STATEKIT_RUNTIME_MODE" envDefault:"auto"`
	APIURL   string `env:"STATEKIT_API_URL"`
	MockSeed string `env:"STATEKIT_MOCK_SEED"`
}

// NewFromEnv initialises an App based on environment variables and returns
// the resolved mode ("http" or "mock"). In auto mode the HTTP backend is used
// when STATEKIT_API_URL is set, the mock otherwise.
func NewFromEnv() (*resource.App, string, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, "", fmt.Errorf("statekit_sdk: parse env: %w", err)
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	apiURL := strings.TrimSpace(cfg.APIURL)

	switch mode {
	case "", ModeAuto:
		if apiURL != "" {
			return newHTTPApp(apiURL)
		}
		return newMockApp(cfg.MockSeed)
	case ModeHTTP:
		if apiURL == "" {
			return nil, "", fmt.Errorf("statekit_sdk: HTTP mode requires STATEKIT_API_URL")
		}
		return newHTTPApp(apiURL)
	case ModeMock:
		return newMockApp(cfg.MockSeed)
	default:
		return nil, "", fmt.Errorf("statekit_sdk: unsupported STATEKIT_RUNTIME_MODE value %q", mode)
	}
}

func newHTTPApp(apiURL string) (*resource.App, string, error) {
	app, err := resource.NewApp(apiURL)
	if err != nil {
		return nil, "", fmt.Errorf("statekit_sdk: init HTTP app: %w", err)
	}
	return app, ModeHTTP, nil
}

func newMockApp(seedPath string) (*resource.App, string, error) {
	backend := mock.New()
	if path := strings.TrimSpace(seedPath); path != "" {
		ds, err := seed.LoadDataset(path)
		if err != nil {
			return nil, "", fmt.Errorf("statekit_sdk: load mock seed: %w", err)
		}
		if err := backend.Seed(ds); err != nil {
			return nil, "", fmt.Errorf("statekit_sdk: apply mock seed: %w", err)
		}
	}
	return resource.NewAppWithBackend(backend), ModeMock, nil
}

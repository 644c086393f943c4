package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Facturer"`
	}

	API struct {
		BaseURL string        `envconfig:"FACTURER_API_URL" default:"http://localhost:8000/api"`
		Token   string        `envconfig:"FACTURER_API_TOKEN"`
		Timeout time.Duration `envconfig:"FACTURER_API_TIMEOUT" default:"30s"`
	}

	// Import holds the session-wide defaults applied to every expense
	// created from a bank statement. The import form pre-fills from these;
	// the user can still change them per session.
	Import struct {
		Category      string  `envconfig:"IMPORT_CATEGORY" default:"Gastos generales"`
		Supplier      string  `envconfig:"IMPORT_SUPPLIER"`
		TaxRate       float64 `envconfig:"IMPORT_TAX_RATE" default:"21"`
		IndexPageSize int     `envconfig:"IMPORT_INDEX_PAGE_SIZE" default:"10000"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

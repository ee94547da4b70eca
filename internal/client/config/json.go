package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mediacatalog/internal/flagx"
	"github.com/dmitrijs2005/mediacatalog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointers tell
// an absent key from an empty value so absent keys keep earlier settings.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	AssetBaseURL   *string         `json:"asset_base_url"`
	StateDBPath    *string         `json:"state_db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	CellWidth      *int            `json:"cell_width"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.AssetBaseURL, jc.AssetBaseURL)
	setString(&cfg.StateDBPath, jc.StateDBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CellWidth != nil {
		cfg.CellWidth = *jc.CellWidth
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

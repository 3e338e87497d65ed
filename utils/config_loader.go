package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── Section configs ────────────────────────────────────────────────────

// AirframeConfig is written verbatim into the metadata line of every output
// file. Log-ingestion sites key aircraft profiles off these values, so they
// belong to the operator rather than the code.
type AirframeConfig struct {
	LogVersion               string `yaml:"log_version"`
	AirframeName             string `yaml:"airframe_name"`
	UnitSoftwarePartNumber   string `yaml:"unit_software_part_number"`
	UnitSoftwareVersion      string `yaml:"unit_software_version"`
	SystemSoftwarePartNumber string `yaml:"system_software_part_number"`
	SystemID                 string `yaml:"system_id"`
	Mode                     string `yaml:"mode"`
}

type OutputConfig struct {
	LocationPlaceholder string `yaml:"location_placeholder"`
	BufferSizeKB        int    `yaml:"buffer_size_kb"`
}

type FusionConfig struct {
	EngineIntervalMs int `yaml:"engine_interval_ms"`
	FlightIntervalMs int `yaml:"flight_interval_ms"`
	SystemIntervalMs int `yaml:"system_interval_ms"`
	BoundaryWindowS  int `yaml:"boundary_window_s"`
}

type IngestConfig struct {
	Workers       int    `yaml:"workers"`  // 0 = GOMAXPROCS
	Encoding      string `yaml:"encoding"` // windows-1252 or windows-1250
	ChannelBuffer int    `yaml:"channel_buffer"`
}

// ConverterConfig is the top-level structure for converter.yaml.
type ConverterConfig struct {
	Airframe AirframeConfig `yaml:"airframe"`
	Output   OutputConfig   `yaml:"output"`
	Fusion   FusionConfig   `yaml:"fusion"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// DefaultConverterConfig returns the settings used when no config file is
// given.
func DefaultConverterConfig() *ConverterConfig {
	return &ConverterConfig{
		Airframe: AirframeConfig{
			LogVersion:               "1.00",
			AirframeName:             "Cirrus SR22",
			UnitSoftwarePartNumber:   "006-B0319-00",
			UnitSoftwareVersion:      "8.01",
			SystemSoftwarePartNumber: "006-B0000-00",
			SystemID:                 "000000000000",
			Mode:                     "NORMAL",
		},
		Output: OutputConfig{
			LocationPlaceholder: "XXXX",
			BufferSizeKB:        256,
		},
		Fusion: FusionConfig{
			EngineIntervalMs: 4000,
			FlightIntervalMs: 1000,
			SystemIntervalMs: 2000,
			BoundaryWindowS:  30,
		},
		Ingest: IngestConfig{
			Encoding:      EncodingWindows1252,
			ChannelBuffer: 1024,
		},
	}
}

const (
	EncodingWindows1252 = "windows-1252"
	EncodingWindows1250 = "windows-1250"
)

// Validate rejects settings the pipeline cannot run with.
func (c *ConverterConfig) Validate() error {
	if c.Fusion.EngineIntervalMs <= 0 || c.Fusion.FlightIntervalMs <= 0 || c.Fusion.SystemIntervalMs <= 0 {
		return fmt.Errorf("fusion intervals must be positive")
	}
	if c.Fusion.BoundaryWindowS < 0 {
		return fmt.Errorf("boundary_window_s must not be negative")
	}
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("ingest workers must not be negative")
	}
	switch strings.ToLower(c.Ingest.Encoding) {
	case EncodingWindows1252, EncodingWindows1250:
	default:
		return fmt.Errorf("unsupported source encoding %q", c.Ingest.Encoding)
	}
	if strings.ContainsAny(c.Output.LocationPlaceholder, `/\`) {
		return fmt.Errorf("location_placeholder must not contain path separators")
	}
	return nil
}

// BoundaryWindow returns the power-on grouping window.
func (c *ConverterConfig) BoundaryWindow() time.Duration {
	return time.Duration(c.Fusion.BoundaryWindowS) * time.Second
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConverterConfig reads converter.yaml on top of the defaults, so a file
// only needs the keys it changes. An empty path yields the defaults.
func LoadConverterConfig(path string) (*ConverterConfig, error) {
	cfg := DefaultConverterConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read converter config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse converter config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid converter config: %w", err)
	}
	return cfg, nil
}

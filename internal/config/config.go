// Package config loads the driver's YAML configuration, blending the
// struct-tag/yaml.Unmarshal pattern from lachlan2k-huawei-solar-mqtt-relay's
// config.go with guiperry-HASHER's internal/config env-override-after-load
// pattern (an env var wins over whatever was loaded from disk).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk driver configuration.
type Config struct {
	USB struct {
		VendorID  uint16 `yaml:"vendor_id"`
		ProductID uint16 `yaml:"product_id"`
	} `yaml:"usb"`

	Modbus struct {
		SlaveAddr uint8  `yaml:"slave_addr"`
		Dialect   string `yaml:"dialect"` // "native" or "backward-compatible"
	} `yaml:"modbus"`

	Poll struct {
		Interval string `yaml:"interval"`
	} `yaml:"poll"`

	API struct {
		Bind string `yaml:"bind"`
	} `yaml:"api"`
}

// Loaded is Config plus the values parsed out of its string fields.
type Loaded struct {
	Config

	PollInterval    time.Duration
	BackwardDialect bool
}

const (
	defaultSlaveAddr    = 1
	defaultVendorID     = 0x051D
	defaultProductID    = 0x0003
	defaultPollInterval = 30 * time.Second
	defaultAPIBind      = ":8080"
)

// Load reads and parses the YAML config at path (skipped entirely if path
// is empty, leaving every field to its default), then applies environment
// overrides and defaults.
func Load(path string) (*Loaded, error) {
	var cfg Loaded

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg.Config); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg.Config); err != nil {
		return nil, err
	}
	applyDefaults(&cfg.Config)

	interval := defaultPollInterval
	if cfg.Poll.Interval != "" {
		d, err := time.ParseDuration(cfg.Poll.Interval)
		if err != nil {
			return nil, fmt.Errorf("config: invalid poll.interval %q: %w", cfg.Poll.Interval, err)
		}
		interval = d
	}
	cfg.PollInterval = interval

	switch cfg.Modbus.Dialect {
	case "", "native":
		cfg.BackwardDialect = false
	case "backward-compatible":
		cfg.BackwardDialect = true
	default:
		return nil, fmt.Errorf("config: invalid modbus.dialect %q", cfg.Modbus.Dialect)
	}

	return &cfg, nil
}

func applyDefaults(c *Config) {
	if c.USB.VendorID == 0 {
		c.USB.VendorID = defaultVendorID
	}
	if c.USB.ProductID == 0 {
		c.USB.ProductID = defaultProductID
	}
	if c.Modbus.SlaveAddr == 0 {
		c.Modbus.SlaveAddr = defaultSlaveAddr
	}
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
}

// applyEnvOverrides lets APC_USB_VENDOR_ID / APC_USB_PRODUCT_ID (hex,
// "0x"-prefixed) and APC_API_BIND override the file, for bench testing
// against a second product id without editing the YAML.
func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("APC_USB_VENDOR_ID"); v != "" {
		id, err := parseHexUint16(v)
		if err != nil {
			return fmt.Errorf("config: APC_USB_VENDOR_ID: %w", err)
		}
		c.USB.VendorID = id
	}
	if v := os.Getenv("APC_USB_PRODUCT_ID"); v != "" {
		id, err := parseHexUint16(v)
		if err != nil {
			return fmt.Errorf("config: APC_USB_PRODUCT_ID: %w", err)
		}
		c.USB.ProductID = id
	}
	if v := os.Getenv("APC_API_BIND"); v != "" {
		c.API.Bind = v
	}
	return nil
}

func parseHexUint16(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// Package sheets provides the Google Sheets implementation of the ledger
// sheet sink.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/googleauth"
)

// Config holds the configuration for the Google Sheets sink.
type Config struct {
	Credentials     googleauth.Credentials
	SpreadsheetID   string
	SpreadsheetName string
	TimeZone        string
	BatchSize       int
	RetryAttempts   int
	RetryDelay      time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "出張旅費申請",
		TimeZone:        "Asia/Tokyo",
		BatchSize:       1000,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.Credentials.LoadFromEnv()

	c.SpreadsheetID = os.Getenv("RYOHI_SPREADSHEET_ID")
	if name := os.Getenv("RYOHI_SPREADSHEET_NAME"); name != "" {
		c.SpreadsheetName = name
	}

	if err := c.Credentials.Validate(); err != nil {
		return fmt.Errorf("missing Google Sheets authentication: %w", err)
	}

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "出張旅費申請"
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}

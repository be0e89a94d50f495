// Package gdocs provides the Google Docs implementation of the document
// template sink: copying the report template, applying the render model, and
// sharing the result.
package gdocs

import (
	"fmt"
	"os"
	"time"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/googleauth"
)

// Config holds the configuration for the Google Docs sink.
type Config struct {
	Credentials   googleauth.Credentials
	TemplateDocID string
	SaveFolderID  string
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.Credentials.LoadFromEnv()

	c.TemplateDocID = os.Getenv("RYOHI_TEMPLATE_DOC_ID")
	c.SaveFolderID = os.Getenv("RYOHI_SAVE_FOLDER_ID")

	if err := c.Credentials.Validate(); err != nil {
		return fmt.Errorf("missing Google Docs authentication: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}
	if c.TemplateDocID == "" {
		return fmt.Errorf("%w: template document ID is required", common.ErrMissingConfig)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

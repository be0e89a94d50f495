package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/gdocs"
	"github.com/sawara-dev/ryohi/internal/googleauth"
	"github.com/sawara-dev/ryohi/internal/rates"
	"github.com/sawara-dev/ryohi/internal/sheets"
	"github.com/sawara-dev/ryohi/internal/storage"
)

// googleCredentials merges environment credentials with the google.* keys
// from the config file. Environment variables win.
func googleCredentials() googleauth.Credentials {
	var creds googleauth.Credentials
	creds.LoadFromEnv()
	if creds.ClientID == "" {
		creds.ClientID = viper.GetString("google.client_id")
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = viper.GetString("google.client_secret")
	}
	if creds.RefreshToken == "" {
		creds.RefreshToken = viper.GetString("google.refresh_token")
	}
	if creds.ServiceAccountPath == "" {
		creds.ServiceAccountPath = viper.GetString("google.service_account_path")
	}
	return creds
}

// loadSheetConfig builds the Sheets sink configuration from environment
// variables and the sheets.* config keys.
func loadSheetConfig() (sheets.Config, error) {
	config := sheets.DefaultConfig()
	config.Credentials = googleCredentials()
	config.SpreadsheetID = firstNonEmpty(
		os.Getenv("RYOHI_SPREADSHEET_ID"),
		viper.GetString("sheets.spreadsheet_id"),
	)
	if name := firstNonEmpty(os.Getenv("RYOHI_SPREADSHEET_NAME"), viper.GetString("sheets.spreadsheet_name")); name != "" {
		config.SpreadsheetName = name
	}
	if err := config.Credentials.Validate(); err != nil {
		return config, common.NewUserError(
			"Google authentication is not configured. Run 'ryohi auth' or set the GOOGLE_* environment variables", err)
	}
	return config, nil
}

// loadDocConfig builds the Docs sink configuration from environment
// variables and the docs.* config keys.
func loadDocConfig() (gdocs.Config, error) {
	config := gdocs.DefaultConfig()
	config.Credentials = googleCredentials()
	config.TemplateDocID = firstNonEmpty(
		os.Getenv("RYOHI_TEMPLATE_DOC_ID"),
		viper.GetString("docs.template_id"),
	)
	config.SaveFolderID = firstNonEmpty(
		os.Getenv("RYOHI_SAVE_FOLDER_ID"),
		viper.GetString("docs.save_folder_id"),
	)
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// defaultDBPath returns the registry database location, preferring the
// configured path over the XDG-style default.
func defaultDBPath() (string, error) {
	if p := viper.GetString("database.path"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "ryohi", "ryohi.db"), nil
}

// openRegistry opens the submission registry and runs migrations.
func openRegistry(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("Could not open the submission registry at "+dbPath, err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return store, nil
}

// loadRates builds the rate table from defaults plus any configured
// overrides under the rates.* keys.
func loadRates() rates.Table {
	table := rates.Default()
	perDiem := int64Map(viper.GetStringMap("rates.per_diem"))
	lodging := int64Map(viper.GetStringMap("rates.lodging"))
	mileage := viper.GetInt64("rates.mileage_per_km")
	return table.WithOverrides(perDiem, lodging, mileage)
}

// int64Map coerces viper's loosely typed config values into yen amounts,
// dropping entries that do not parse.
func int64Map(m map[string]any) map[string]int64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int64, len(m))
	for k, v := range m {
		switch n := v.(type) {
		case int:
			out[k] = int64(n)
		case int64:
			out[k] = n
		case float64:
			out[k] = int64(n)
		case string:
			if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
				out[k] = parsed
			}
		}
	}
	return out
}

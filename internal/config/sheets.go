package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration from v and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or TALLY_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	// Load from Viper first
	if s := v.GetString("sheets.service_account_path"); s != "" {
		config.ServiceAccountPath = ExpandPath(s)
	}
	if s := v.GetString("sheets.client_id"); s != "" {
		config.ClientID = s
	}
	if s := v.GetString("sheets.client_secret"); s != "" {
		config.ClientSecret = s
	}
	if s := v.GetString("sheets.refresh_token"); s != "" {
		config.RefreshToken = s
	}
	if s := v.GetString("sheets.spreadsheet_id"); s != "" {
		config.SpreadsheetID = s
	}
	if s := v.GetString("sheets.spreadsheet_name"); s != "" {
		config.SpreadsheetName = s
	}
	if s := v.GetString("sheets.sheet_title"); s != "" {
		config.SheetTitle = s
	}

	// Override with direct environment variables if not set
	if config.ServiceAccountPath == "" {
		if s := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); s != "" {
			config.ServiceAccountPath = ExpandPath(s)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	// A token saved by "tally export sheets-login" fills the gap last
	sheets.RefreshTokenFromFile(&config, SheetsTokenFile(v))

	if err := config.Validate(); err != nil {
		if errors.Is(err, sheets.ErrNoAuth) {
			return nil, fmt.Errorf("%w: %w", common.ErrMissingConfig, err)
		}
		return nil, err
	}

	return &config, nil
}

// SheetsTokenFile returns where the interactive login stores its token.
func SheetsTokenFile(v *viper.Viper) string {
	if s := v.GetString("sheets.token_file"); s != "" {
		return ExpandPath(s)
	}
	return userConfigFile("sheets-token.json")
}

// LoadSheetsOAuth returns the client settings for the interactive login.
func LoadSheetsOAuth(v *viper.Viper) (sheets.OAuth2Config, error) {
	cfg := sheets.OAuth2Config{
		ClientID:     v.GetString("sheets.client_id"),
		ClientSecret: v.GetString("sheets.client_secret"),
		TokenFile:    SheetsTokenFile(v),
		CallbackAddr: v.GetString("sheets.callback_addr"),
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return sheets.OAuth2Config{}, fmt.Errorf("%w: sheets.client_id and sheets.client_secret are required", common.ErrMissingConfig)
	}
	return cfg, nil
}

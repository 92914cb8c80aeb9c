// Package sheets publishes transaction reports to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"time"
)

// AuthMethod is how the writer authenticates against the Sheets API.
type AuthMethod int

// Supported authentication methods.
const (
	AuthNone AuthMethod = iota
	AuthServiceAccount
	AuthOAuth2
)

func (m AuthMethod) String() string {
	switch m {
	case AuthServiceAccount:
		return "service account"
	case AuthOAuth2:
		return "oauth2"
	default:
		return "none"
	}
}

// ErrNoAuth means neither a service account nor complete OAuth2 credentials are set.
var ErrNoAuth = errors.New("no authentication method configured")

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	SheetTitle         string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns the writer defaults: a new "Tally Report" spreadsheet
// with a "Transactions" tab. Credentials still have to be filled in.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "Tally Report",
		SheetTitle:       "Transactions",
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

func (c Config) hasOAuth2() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Auth reports the configured authentication method. A service account wins
// when both are present; Validate rejects that combination.
func (c Config) Auth() AuthMethod {
	switch {
	case c.ServiceAccountPath != "":
		return AuthServiceAccount
	case c.hasOAuth2():
		return AuthOAuth2
	default:
		return AuthNone
	}
}

// Validate checks that exactly one authentication method is set and that the
// spreadsheet target and tuning values make sense.
func (c Config) Validate() error {
	switch {
	case c.Auth() == AuthNone:
		return ErrNoAuth
	case c.ServiceAccountPath != "" && c.hasOAuth2():
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	case c.SpreadsheetID == "" && c.SpreadsheetName == "":
		return fmt.Errorf("spreadsheet id or name is required")
	case c.SheetTitle == "":
		return fmt.Errorf("sheet title cannot be empty")
	case c.BatchSize <= 0:
		return fmt.Errorf("batch size must be positive")
	case c.RetryAttempts < 0:
		return fmt.Errorf("retry attempts cannot be negative")
	case c.RetryDelay < 0:
		return fmt.Errorf("retry delay cannot be negative")
	}
	return nil
}

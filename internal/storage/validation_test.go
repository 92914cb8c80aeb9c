package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test", wantErr: false},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateTransaction(t *testing.T) {
	valid := model.Transaction{
		ID:     "txn-1",
		Date:   model.NewDate(2024, time.January, 1),
		Title:  "Coffee",
		Amount: decimal.RequireFromString("3.50"),
	}

	tests := []struct {
		name    string
		mutate  func(*model.Transaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.Transaction) {}, wantErr: false},
		{name: "missing id", mutate: func(t *model.Transaction) { t.ID = "" }, wantErr: true},
		{name: "missing date", mutate: func(t *model.Transaction) { t.Date = time.Time{} }, wantErr: true},
		{name: "missing title", mutate: func(t *model.Transaction) { t.Title = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			err := validateTransaction(txn)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTransaction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLedger(t *testing.T) {
	if err := validateLedger(model.NewLedger()); err != nil {
		t.Errorf("validateLedger(NewLedger()) = %v, want nil", err)
	}

	noCurrency := model.NewLedger()
	noCurrency.CurrencyCode = ""
	if err := validateLedger(noCurrency); !errors.Is(err, ErrInvalidLedger) {
		t.Errorf("validateLedger() error = %v, want ErrInvalidLedger", err)
	}
}

func TestValidateBackupID(t *testing.T) {
	for _, id := range []string{"../escape", "a/b", `a\b`, ""} {
		if err := validateBackupID(id); err == nil {
			t.Errorf("validateBackupID(%q) = nil, want error", id)
		}
	}
	if err := validateBackupID("before-clear"); err != nil {
		t.Errorf("validateBackupID() = %v, want nil", err)
	}
}

func TestValidationErrorsAreNotRetryable(t *testing.T) {
	for _, err := range []error{ErrNilContext, ErrEmptyString, ErrInvalidTransaction, ErrInvalidLedger, ErrInvalidCredential} {
		if !errors.Is(err, common.ErrValidation) {
			t.Errorf("%v does not wrap common.ErrValidation", err)
		}
		wrapped := fmt.Errorf("transaction at index 0: %w", err)
		if common.IsRetryable(wrapped) {
			t.Errorf("IsRetryable(%v) = true, want false", wrapped)
		}
	}
}

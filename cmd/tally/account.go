package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
)

const minPasswordLength = 4

func accountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the local account",
		Long: `Register, check or delete the single local account.

With auth.required set to true (TALLY_AUTH_REQUIRED=true), every other
command asks for this login first. The username and password can also come
from auth.username and auth.password (TALLY_AUTH_USERNAME, TALLY_AUTH_PASSWORD).`,
	}

	cmd.AddCommand(registerCmd(a))
	cmd.AddCommand(loginCmd(a))
	cmd.AddCommand(deleteAccountCmd(a))
	return cmd
}

func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}

func registerCmd(a *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create the local account",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := a.prompt(cmd)
			out := cmd.OutOrStdout()

			if username == "" {
				username = a.v.GetString(keyAuthUsername)
			}
			if username == "" {
				var err error
				if username, err = p.Ask(ctx, "Username", ""); err != nil {
					return err
				}
			}

			password := a.v.GetString(keyAuthPassword)
			if password == "" {
				var err error
				if password, err = p.Password(ctx, "Password"); err != nil {
					return err
				}
				if err := validatePassword(password); err != nil {
					return err
				}
				again, err := p.Password(ctx, "Confirm password")
				if err != nil {
					return err
				}
				if again != password {
					return common.NewValidationError("password", "passwords do not match")
				}
			}
			if err := validatePassword(password); err != nil {
				return err
			}

			err := a.authenticator().Register(ctx, username, password)
			if errors.Is(err, common.ErrAlreadyRegistered) {
				return common.NewUserError("an account already exists; delete it first with 'tally account delete'", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Account %s registered", username)))
			if !a.cfg.AuthRequired {
				fmt.Fprintln(out, cli.FormatInfo("Set auth.required to true to ask for this login on every command."))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the account's username and password",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			username, err := a.login(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Welcome back, %s! %s", username, cli.TallyIcon)))
			return nil
		}),
	}
}

func deleteAccountCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and all data",
		Long:  `Delete the local account together with every transaction, the budget and the currency setting.`,
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if _, err := a.login(cmd); err != nil {
				return err
			}

			if !force {
				ok, err := a.prompt(cmd).Confirm(ctx, "Delete your account and all data? This cannot be undone.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Account kept."))
					return nil
				}
			}

			if err := a.engine.ClearAllData(ctx); err != nil {
				return err
			}
			if err := a.authenticator().DeleteAccount(ctx); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("Account and all data deleted"))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")
	return cmd
}

// login verifies the stored account against the configured or prompted credentials.
func (a *app) login(cmd *cobra.Command) (string, error) {
	username, password, err := a.credentials(cmd)
	if err != nil {
		return "", err
	}

	ok, err := a.authenticator().Login(cmd.Context(), username, password)
	if errors.Is(err, common.ErrNotRegistered) {
		return "", common.NewUserError("no account registered: run 'tally account register' first", err)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errInvalidLogin
	}
	return username, nil
}

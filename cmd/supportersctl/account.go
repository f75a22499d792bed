// AngelaMos | 2026
// account.go

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rossoverde/supporters/internal/client"
	"github.com/rossoverde/supporters/internal/i18n"
)

func newSignUpCommand(opts *options) *cobra.Command {
	var email, password, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			lang := sdk.Preferences.Language()

			err = sdk.Sessions.SignUp(cmd.Context(), email, password, confirm, lang.String())
			switch {
			case errors.Is(err, client.ErrPasswordTooShort):
				return errors.New(i18n.T(lang, "auth.password_too_short"))
			case errors.Is(err, client.ErrPasswordMismatch):
				return errors.New(i18n.T(lang, "auth.password_mismatch"))
			case err != nil:
				return errors.New(client.Message(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "auth.signup_success"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignInCommand(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			lang := sdk.Preferences.Language()

			if err := sdk.Sessions.SignIn(cmd.Context(), email, password); err != nil {
				return errors.New(client.Message(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(lang, "auth.signin_success"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignOutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Revoke the session and forget it locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			if err := sdk.Sessions.SignOut(cmd.Context()); err != nil {
				// The local session is already gone.
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", client.Message(err))
			}
			return nil
		},
	}
}

func newWhoAmICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in member's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			if err := requireSession(sdk); err != nil {
				return err
			}

			p, err := sdk.Profiles.Load(cmd.Context())
			if err != nil {
				return errors.New(client.Message(err))
			}

			tw := newTable(cmd)
			fmt.Fprintf(tw, "id\t%s\n", p.ID)
			fmt.Fprintf(tw, "name\t%s\n", p.DisplayName())
			fmt.Fprintf(tw, "email\t%s\n", p.Email)
			fmt.Fprintf(tw, "role\t%s\n", p.Role)
			fmt.Fprintf(tw, "charter accepted\t%t\n", p.CharterAccepted)
			return tw.Flush()
		},
	}
}

func newLangCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the preferred language",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the preferred language and its direction",
			RunE: func(cmd *cobra.Command, _ []string) error {
				sdk, err := opts.open()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n",
					sdk.Preferences.Language(), sdk.Preferences.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <en|fr|ar>",
			Short:     "Change the preferred language",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"en", "fr", "ar"},
			RunE: func(cmd *cobra.Command, args []string) error {
				sdk, err := opts.open()
				if err != nil {
					return err
				}
				lang, err := sdk.Preferences.SetLanguage(args[0])
				if err != nil {
					return fmt.Errorf("unsupported language %q, choose en, fr or ar", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lang, lang.Dir())
				return nil
			},
		},
	)

	return cmd
}

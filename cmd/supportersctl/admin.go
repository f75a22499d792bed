// AngelaMos | 2026
// admin.go

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rossoverde/supporters/internal/client"
	"github.com/rossoverde/supporters/internal/guard"
	"github.com/rossoverde/supporters/internal/i18n"
)

func newAdminCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office commands, admin accounts only",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "users",
			Short: "List member profiles",
			RunE: func(cmd *cobra.Command, _ []string) error {
				sdk, err := openAdmin(cmd, opts)
				if err != nil {
					return err
				}

				users := sdk.Users()
				if err := users.Fetch(cmd.Context()); err != nil {
					return errors.New(client.Message(err))
				}

				tw := newTable(cmd)
				fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tJOINED")
				for _, p := range users.Data() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						p.ID, p.Email, p.DisplayName(), p.Role, p.CreatedAt.Format("2006-01-02"))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "promote <email>",
			Short: "Give an existing member the admin role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sdk, err := openAdmin(cmd, opts)
				if err != nil {
					return err
				}

				res := sdk.PromoteToAdmin(cmd.Context(), args[0])
				if !res.OK() {
					return errors.New(res.Error)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", res.Data.Email, res.Data.Role)
				return nil
			},
		},
	)

	return cmd
}

// openAdmin resolves the admin gate before any back-office call is made.
func openAdmin(cmd *cobra.Command, opts *options) (*client.SDK, error) {
	sdk, err := opts.open()
	if err != nil {
		return nil, err
	}
	lang := sdk.Preferences.Language()

	switch sdk.AdminGate().Resolve(cmd.Context()) {
	case guard.Authorized:
		return sdk, nil
	case guard.Unauthenticated:
		return nil, requireSession(sdk)
	case guard.Unauthorized:
		return nil, errors.New(i18n.T(lang, "guard.unauthorized"))
	default:
		return nil, errors.New(i18n.T(lang, "guard.failed"))
	}
}

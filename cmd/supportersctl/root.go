// AngelaMos | 2026
// root.go

package main

import (
	"errors"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rossoverde/supporters/internal/client"
)

type options struct {
	apiURL    string
	storePath string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "supportersctl",
		Short: "Command line client for the RossoVerde supporters API",
		Long: `supportersctl talks to the supporters API the same way the web pages do.

The session and language preference are kept in a small JSON file so that
later commands reuse them.

Examples:
  supportersctl signin --email fan@example.com --password ********
  supportersctl lang set ar
  supportersctl orders create --product 3f0c...:2
  supportersctl admin users`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load(".env")
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("SUPPORTERS_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&opts.storePath, "store", "", "session file (default is the user config dir)")

	root.AddCommand(
		newSignUpCommand(opts),
		newSignInCommand(opts),
		newSignOutCommand(opts),
		newWhoAmICommand(opts),
		newLangCommand(opts),
		newTiersCommand(opts),
		newProductsCommand(opts),
		newOrdersCommand(opts),
		newInvoicesCommand(opts),
		newAdminCommand(opts),
	)

	return root
}

func (o *options) open() (*client.SDK, error) {
	path := o.storePath
	if path == "" {
		p, err := client.DefaultStoragePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return client.Open(o.apiURL, client.NewFileStorage(path))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}

func requireSession(sdk *client.SDK) error {
	if sdk.Sessions.Session() == nil {
		return errors.New("not signed in, run supportersctl signin first")
	}
	return nil
}

// Package cli implements the rateit command-line client.
package cli

import (
	"context"
	"errors"
	"os"

	"rateit/internal/client"

	"github.com/spf13/cobra"
)

// DefaultServer is used when neither --server nor RATEIT_SERVER is set.
const DefaultServer = "http://localhost:8080"

var errNotLoggedIn = errors.New("not logged in, run `rateit login` first")

// app carries what every command needs.
type app struct {
	server     string
	sessionDir string
	session    *client.Session
}

// NewRootCommand builds the rateit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rateit",
		Short:         "Post and browse RateIt reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.OpenSession(a.sessionDir)
			if err != nil {
				return err
			}
			a.session = session
			return nil
		},
	}

	server := os.Getenv("RATEIT_SERVER")
	if server == "" {
		server = DefaultServer
	}
	root.PersistentFlags().StringVar(&a.server, "server", server, "API base URL (env RATEIT_SERVER)")
	root.PersistentFlags().StringVar(&a.sessionDir, "session-dir", "", "where the login session is kept (default <config dir>/rateit)")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.usersCommand(),
		a.reviewsCommand(),
		a.saveCommand(),
		a.savedCommand(),
	)
	return root
}

// client returns an API client carrying the session token, if any.
func (a *app) client(ctx context.Context) *client.Client {
	return client.New(a.server, client.WithToken(a.session.Token(ctx)))
}

// currentUserID returns the logged-in user's ID.
func (a *app) currentUserID(ctx context.Context) (string, error) {
	user, err := a.session.Get(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errNotLoggedIn
	}
	return user.ID, nil
}

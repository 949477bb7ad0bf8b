package cli

import (
	"bufio"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [name]",
		Short: "Log in, creating the account if the name is new",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				var err error
				if name, err = prompt(in, out, "Name: "); err != nil {
					return err
				}
			}

			password, err := promptPassword(in, out)
			if err != nil {
				return err
			}

			res, err := a.client(ctx).Authenticate(ctx, name, password)
			if err != nil {
				return err
			}
			if err := a.session.Set(ctx, res.User, res.Token); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			if res.IsNewUser {
				fmt.Fprintf(out, "Welcome, %s! Your account has been created.\n", res.User.Name)
			} else {
				fmt.Fprintf(out, "Welcome back, %s!\n", res.User.Name)
			}
			return nil
		},
	}
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if user == nil {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			fmt.Fprintf(out, "%s (id %s, last login %s)\n", user.Name, user.ID, user.LastLogin.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func (a *app) usersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			users, err := a.client(ctx).ListUsers(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED\tLAST LOGIN")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name,
					u.CreatedAt.Format("2006-01-02"), u.LastLogin.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"stackit/internal/config"
	"stackit/internal/models"
	"stackit/internal/services"

	"github.com/spf13/cobra"
)

var makeAdminCmd = &cobra.Command{
	Use:   "make-admin EMAIL",
	Short: "Promote an existing user to admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := openUserService(config.Load())
		if err != nil {
			return err
		}
		return makeAdmin(cmd.Context(), cmd.OutOrStdout(), users, args[0])
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list-users",
	Short: "List every account with its role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := openUserService(config.Load())
		if err != nil {
			return err
		}
		return listUsers(cmd.Context(), cmd.OutOrStdout(), users)
	},
}

// adminUsers is the part of the user service the commands need.
type adminUsers interface {
	List(ctx context.Context) ([]models.User, error)
	MakeAdmin(ctx context.Context, email string) (*models.User, error)
}

func makeAdmin(ctx context.Context, out io.Writer, users adminUsers, email string) error {
	user, err := users.MakeAdmin(ctx, email)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("no user with email %s", email)
	}
	if err != nil {
		return err
	}
	printSuccess(out, "%s (%s) is now an admin", user.Name, user.Email)
	return nil
}

func listUsers(ctx context.Context, out io.Writer, users adminUsers) error {
	list, err := users.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printMuted(out, "No users yet")
		return nil
	}

	printSection(out, fmt.Sprintf("%d users", len(list)))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log the manager in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dash.Sessions().Login(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log the manager out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dash.Sessions().Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a manager is logged in",
	Run: func(cmd *cobra.Command, args []string) {
		if dash.Sessions().IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}

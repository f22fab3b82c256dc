package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Manage saved access tokens",
}

var tokensListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved access tokens",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return configError(err)
		}
		defer store.Close()

		tokens, err := store.List()
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No saved tokens")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ACCOUNT\tSCREEN NAME\tUSER ID\tSAVED")
		for _, t := range tokens {
			fmt.Fprintf(w, "%s\t@%s\t%s\t%s\n", t.Account, t.ScreenName, t.UserID, t.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var tokensDeleteCmd = &cobra.Command{
	Use:   "delete ACCOUNT",
	Short: "Delete a saved access token",
	Args:  minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return configError(err)
		}
		defer store.Close()

		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted %q\n", args[0])
		return nil
	},
}

func init() {
	tokensCmd.AddCommand(tokensListCmd)
	tokensCmd.AddCommand(tokensDeleteCmd)
}

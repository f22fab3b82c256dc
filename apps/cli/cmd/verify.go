package cmd

import (
	"fmt"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the configured access token works",
	Long: `Call account/verify_credentials and print the authenticated user.

Examples:
  twitteroauth verify
  twitteroauth verify --account work`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.HasAccessToken() {
			return configError(fmt.Errorf("an access token is required (set it in the config or use --account)"))
		}

		client := newUserClient(cfg)
		body, err := client.Get("account/verify_credentials", twitteroauth.NewParams("skip_status", "true"))
		if err != nil {
			return err
		}
		if status := client.LastResult().Status(); !status.IsSuccess() {
			return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, body, nil)
		}

		user, err := decodeUser(body)
		if err != nil {
			return err
		}
		printUser(cmd, user)
		return nil
	},
}

func decodeUser(body twitteroauth.Body) (*twitter.User, error) {
	if apiErr := body.APIError(); apiErr != nil {
		return nil, apiErr
	}
	var user twitter.User
	if err := body.Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func printUser(cmd *cobra.Command, user *twitter.User) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", green("✓"), bold("@"+user.ScreenName), user.IDStr)
	if user.Name != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  name:      %s\n", user.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  followers: %d\n", user.FollowersCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  following: %d\n", user.FriendsCount)
}

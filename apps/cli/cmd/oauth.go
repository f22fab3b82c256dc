package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/db"
	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

var (
	callbackFlag     string
	tokenFlag        string
	tokenSecretFlag  string
	verifierFlag     string
	saveFlag         string
	authenticateFlag bool
)

var requestTokenCmd = &cobra.Command{
	Use:   "request-token",
	Short: "Obtain a request token (step 1 of the OAuth flow)",
	Long: `Call oauth/request_token with the consumer credentials only and print
the request token together with the URL the user must visit to approve it.

Examples:
  twitteroauth request-token
  twitteroauth request-token --callback https://example.com/callback`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		callback := callbackFlag
		if callback == "" {
			callback = cfg.Callback
		}
		if callback == "" {
			callback = "oob"
		}

		client := newClient(cfg, "", "")
		body, err := client.OAuth("oauth/request_token", twitteroauth.NewParams("oauth_callback", callback))
		if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, body, err); err != nil {
			return err
		}

		if token, ok := body.Value("oauth_token"); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nAuthorize at: %s\n", color.CyanString(client.AuthorizeURL(token)))
		}
		return nil
	},
}

var authorizeURLCmd = &cobra.Command{
	Use:   "authorize-url --token TOKEN [key=value...]",
	Short: "Print the URL a user visits to approve a request token",
	Long: `Print <host>/oauth/authorize?oauth_token=TOKEN followed by any extra
parameters, in the order given. Nothing is sent.

Examples:
  twitteroauth authorize-url --token Z6eEdO8MOmk394WozF5oKyuAv855l4Mlqo7hhlSLik
  twitteroauth authorize-url --token Z6eE... force_login=true --authenticate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, err := parseParams(args)
		if err != nil {
			return usageError(err)
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := "oauth/authorize"
		if authenticateFlag {
			path = "oauth/authenticate"
		}
		params := append(twitteroauth.NewParams("oauth_token", tokenFlag), extra...)
		fmt.Fprintln(cmd.OutOrStdout(), newClient(cfg, "", "").URL(path, params))
		return nil
	},
}

var accessTokenCmd = &cobra.Command{
	Use:   "access-token --token TOKEN --token-secret SECRET --verifier PIN",
	Short: "Exchange an approved request token for an access token (step 3)",
	Long: `Call oauth/access_token, signed with the request token, and print the
resulting access token. With --save the token is kept in the token store
and can be used later with --account.

Examples:
  twitteroauth access-token --token Z6eE... --token-secret Kd75... --verifier 1234567
  twitteroauth access-token --token Z6eE... --token-secret Kd75... --verifier 1234567 --save work`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg, tokenFlag, tokenSecretFlag)
		body, err := client.OAuth("oauth/access_token", twitteroauth.NewParams("oauth_verifier", verifierFlag))
		if err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, body, err); err != nil {
			return err
		}

		if saveFlag == "" {
			return nil
		}
		return saveToken(cmd, saveFlag, cfg.ConsumerKey, body)
	},
}

func init() {
	requestTokenCmd.Flags().StringVar(&callbackFlag, "callback", "", `OAuth callback URL (default from config, else "oob")`)

	authorizeURLCmd.Flags().StringVar(&tokenFlag, "token", "", "Request token")
	authorizeURLCmd.Flags().BoolVar(&authenticateFlag, "authenticate", false, "Use oauth/authenticate (Sign in with Twitter)")
	_ = authorizeURLCmd.MarkFlagRequired("token")

	accessTokenCmd.Flags().StringVar(&tokenFlag, "token", "", "Request token")
	accessTokenCmd.Flags().StringVar(&tokenSecretFlag, "token-secret", "", "Request token secret")
	accessTokenCmd.Flags().StringVar(&verifierFlag, "verifier", "", "PIN or oauth_verifier from the callback")
	accessTokenCmd.Flags().StringVar(&saveFlag, "save", "", "Save the access token under this account name")
	_ = accessTokenCmd.MarkFlagRequired("token")
	_ = accessTokenCmd.MarkFlagRequired("token-secret")
	_ = accessTokenCmd.MarkFlagRequired("verifier")
}

func saveToken(cmd *cobra.Command, account, consumerKey string, body twitteroauth.Body) error {
	tok := db.Token{Account: account, ConsumerKey: consumerKey}
	tok.Token, _ = body.Value("oauth_token")
	tok.TokenSecret, _ = body.Value("oauth_token_secret")
	tok.UserID, _ = body.Value("user_id")
	tok.ScreenName, _ = body.Value("screen_name")
	if tok.Token == "" || tok.TokenSecret == "" {
		return fmt.Errorf("response has no access token to save")
	}

	store, err := openStore()
	if err != nil {
		return configError(err)
	}
	defer store.Close()

	if err := store.Save(tok); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved access token for @%s as %q\n", tok.ScreenName, account)
	return nil
}

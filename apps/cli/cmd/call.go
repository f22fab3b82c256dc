package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

var fileFieldsFlag []string

var getCmd = &cobra.Command{
	Use:   "get PATH [key=value...]",
	Short: "Send a signed GET request",
	Long: `Send a signed GET request to <host>/<version>/PATH.json.

Examples:
  twitteroauth get account/verify_credentials
  twitteroauth get search/tweets q=twitterapi count=5`,
	Args: minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callCommand(cmd, args, (*twitteroauth.Client).Get)
	},
}

var postCmd = &cobra.Command{
	Use:   "post PATH [key=value...]",
	Short: "Send a signed form-encoded POST request",
	Long: `Send a signed POST request to <host>/<version>/PATH.json with the
parameters as an application/x-www-form-urlencoded body.

Examples:
  twitteroauth post statuses/update "status=Hello world"
  twitteroauth post favorites/create id=20`,
	Args: minArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callCommand(cmd, args, (*twitteroauth.Client).Post)
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload PATH media=FILE [key=value...]",
	Short: "Upload a file as a signed multipart POST",
	Long: `Send a signed multipart POST to <upload host>/<version>/PATH.json.
Parameters named by --file-field carry local file paths and are sent as
file parts; they are not part of the signature.

Examples:
  twitteroauth upload media/upload media=kitten.jpg
  twitteroauth upload media/upload media=clip.gif media_category=tweet_gif`,
	Args: minArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callCommand(cmd, args, (*twitteroauth.Client).Upload)
	},
}

func init() {
	uploadCmd.Flags().StringSliceVar(&fileFieldsFlag, "file-field", twitteroauth.DefaultFileFields, "Parameters holding file paths")
}

type callFunc func(c *twitteroauth.Client, path string, params twitteroauth.Params) (twitteroauth.Body, error)

func callCommand(cmd *cobra.Command, args []string, call callFunc) error {
	params, err := parseParams(args[1:])
	if err != nil {
		return usageError(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg, cfg.AccessToken, cfg.AccessTokenSecret, twitteroauth.WithFileFields(fileFieldsFlag...))

	body, err := call(client, args[0], params)
	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), client, body, err)
}

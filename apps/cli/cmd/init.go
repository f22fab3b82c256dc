package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .twitteroauth.yaml in the current directory",
	Long: `Create a .twitteroauth.yaml configuration file in the current directory.

Secrets are written as ${VAR} references so the file can be committed;
set the variables in the environment or in a .env file passed with --env-file.

Examples:
  twitteroauth init
  twitteroauth init --force`,
	Args: noArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return usageErrorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	cfg := config.DefaultConfig()
	cfg.ConsumerKey = "${" + config.EnvPrefix + "CONSUMER_KEY}"
	cfg.ConsumerSecret = "${" + config.EnvPrefix + "CONSUMER_SECRET}"
	cfg.AccessToken = "${" + config.EnvPrefix + "ACCESS_TOKEN}"
	cfg.AccessTokenSecret = "${" + config.EnvPrefix + "ACCESS_TOKEN_SECRET}"
	cfg.Callback = "oob"

	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	return nil
}

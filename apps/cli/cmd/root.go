package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/config"
	"github.com/abdul-hamid-achik/twitteroauth/packages/core/env"
	"github.com/abdul-hamid-achik/twitteroauth/packages/db"
	"github.com/abdul-hamid-achik/twitteroauth/packages/http"
	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag         string
	envFileFlag        string
	verboseFlag        bool
	noColorFlag        bool
	timeoutFlag        int
	connectTimeoutFlag int
	proxyFlag          string
	insecureFlag       bool
	accountFlag        string
	storeFlag          string
	headerFlags        []string
)

var rootCmd = &cobra.Command{
	Use:   "twitteroauth",
	Short: "OAuth 1.0a signed calls to the Twitter REST API",
	Long: `twitteroauth signs requests with OAuth 1.0a (HMAC-SHA1) and sends them
to the Twitter REST API. It walks through the three-legged OAuth flow and
can keep the resulting access tokens for later calls.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
	},
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var se *statusError
		if !errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", getEnvString("TWITTEROAUTH_CONFIG", ""), "Path to config file (env: TWITTEROAUTH_CONFIG)")
	pf.StringVar(&envFileFlag, "env-file", getEnvString("TWITTEROAUTH_ENV_FILE", ""), "Path to .env file with credentials (env: TWITTEROAUTH_ENV_FILE)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log requests to stderr")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("TWITTEROAUTH_NO_COLOR", false), "Disable colored output (env: TWITTEROAUTH_NO_COLOR)")
	pf.IntVar(&timeoutFlag, "timeout", 0, "Total request timeout in seconds (default 5)")
	pf.IntVar(&connectTimeoutFlag, "connect-timeout", 0, "Connection timeout in seconds (default 5)")
	pf.StringVar(&proxyFlag, "proxy", "", "Proxy as [user:password@]host[:port]")
	pf.BoolVarP(&insecureFlag, "insecure", "k", false, "Disable SSL certificate validation")
	pf.StringVarP(&accountFlag, "account", "a", getEnvString("TWITTEROAUTH_ACCOUNT", ""), "Use the access token saved under this name (env: TWITTEROAUTH_ACCOUNT)")
	pf.StringArrayVarP(&headerFlags, "header", "H", nil, "Extra request header as 'Name: value' (repeatable)")
	pf.StringVar(&storeFlag, "store", getEnvString("TWITTEROAUTH_STORE", ""), "Token store path (default ~/.twitteroauth/tokens.db) (env: TWITTEROAUTH_STORE)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(requestTokenCmd)
	rootCmd.AddCommand(authorizeURLCmd)
	rootCmd.AddCommand(accessTokenCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// loadConfig layers the config file, the .env file, the environment and
// the command line flags, in that order of increasing precedence. ${VAR}
// references in the config file see the .env file before the environment.
func loadConfig() (*config.Config, error) {
	vars := env.Vars{}
	if envFileFlag != "" {
		var err error
		if vars, err = env.LoadDotEnv(envFileFlag); err != nil {
			return nil, configError(err)
		}
	}

	resolver := env.NewResolver(vars)
	if verboseFlag {
		logger := newLogger(true)
		resolver.SetWarnFunc(func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...), "config", configFlag)
		})
	}

	cfg, err := config.LoadConfig(configFlag, resolver)
	if err != nil {
		return nil, configError(err)
	}
	cfg = cfg.Merge(config.FromVars(env.Merge(vars, env.LoadSystemEnv(""))))

	flags := &config.Config{
		Timeout:           timeoutFlag,
		ConnectionTimeout: connectTimeoutFlag,
	}
	if proxyFlag != "" {
		p, err := parseProxy(proxyFlag)
		if err != nil {
			return nil, usageError(err)
		}
		flags.Proxy = p
	}
	if insecureFlag {
		flags.ValidateSSL = config.BoolPtr(false)
	}
	if verboseFlag {
		flags.Verbose = config.BoolPtr(true)
	}
	if noColorFlag {
		flags.NoColor = config.BoolPtr(true)
	}
	if len(headerFlags) > 0 {
		headers, err := parseHeaders(headerFlags)
		if err != nil {
			return nil, usageError(err)
		}
		flags.Headers = headers
	}
	cfg = cfg.Merge(flags)
	if cfg.GetNoColor() {
		color.NoColor = true
	}

	if accountFlag != "" {
		if err := applyAccount(cfg, accountFlag); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

func applyAccount(cfg *config.Config, account string) error {
	store, err := openStore()
	if err != nil {
		return configError(err)
	}
	defer store.Close()

	tok, err := store.Get(account)
	if err != nil {
		return configError(err)
	}
	if tok.ConsumerKey != cfg.ConsumerKey {
		return configError(fmt.Errorf("account %q was authorized for a different consumer key", account))
	}
	cfg.AccessToken = tok.Token
	cfg.AccessTokenSecret = tok.TokenSecret
	return nil
}

func openStore() (*db.Store, error) {
	path := storeFlag
	if path == "" {
		var err error
		if path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newClient builds an API client with the given token pair. Pass empty
// strings for two-legged calls.
func newClient(cfg *config.Config, token, tokenSecret string, extra ...twitteroauth.Option) *twitteroauth.Client {
	opts := []twitteroauth.Option{
		twitteroauth.WithTransport(http.NewClient(
			http.WithValidateSSL(cfg.GetValidateSSL()),
			http.WithDefaultHeaders(cfg.Headers),
		)),
		twitteroauth.WithHost(cfg.Host),
		twitteroauth.WithUploadHost(cfg.UploadHost),
		twitteroauth.WithAPIVersion(cfg.APIVersion),
		twitteroauth.WithConnectionTimeout(cfg.GetConnectionTimeout()),
		twitteroauth.WithTimeout(cfg.GetTimeout()),
		twitteroauth.WithProxy(cfg.GetProxy()),
		twitteroauth.WithLogger(newLogger(cfg.GetVerbose())),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, twitteroauth.WithUserAgent(cfg.UserAgent))
	}
	opts = append(opts, extra...)
	return twitteroauth.New(cfg.ConsumerKey, cfg.ConsumerSecret, token, tokenSecret, opts...)
}

func newUserClient(cfg *config.Config) *twitteroauth.Client {
	return newClient(cfg, cfg.AccessToken, cfg.AccessTokenSecret)
}

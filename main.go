package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghpr",
	Short: "GitHub pull request review companion",
	Long: `ghpr surfaces a pull request's reviews, comment threads, and timeline
in the terminal, normalized from GitHub's REST and GraphQL APIs.`,
	SilenceUsage: true,
}

var (
	flagConfig  string
	flagVerbose bool

	cfg    Config
	logger zerolog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default .ghpr.yml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		level := zerolog.InfoLevel
		if flagVerbose || cfg.Verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() (*GitHubClient, error) {
	token, err := getGitHubToken(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("getting GitHub token: %w", err)
	}
	return NewGitHubClient(token, cfg, logger)
}

// parsePRRef parses an "owner/repo#123" reference.
func parsePRRef(s string) (owner, repo string, number int, err error) {
	ownerRepo, num, ok := strings.Cut(s, "#")
	if !ok {
		return "", "", 0, fmt.Errorf("expected OWNER/REPO#NUMBER, got %q", s)
	}
	owner, repo, ok = strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", 0, fmt.Errorf("expected OWNER/REPO#NUMBER, got %q", s)
	}
	number, err = strconv.Atoi(num)
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid PR number %q", num)
	}
	return owner, repo, number, nil
}

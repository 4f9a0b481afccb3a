package main

import (
	"fmt"
	"os"

	"github.com/archmine/archmine-go/internal/config"
	"github.com/archmine/archmine-go/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "archmine",
	Short: "archmine - mine architectural decisions from git history",
	Long: `archmine converts a repository's commit log into a small set of
human-readable decision records explaining what changed architecturally,
when, and why, with supporting evidence.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(logging.Config{Verbose: verbose})

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .archmine/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`archmine {{.Version}}
Build time: ` + BuildTime + `
`)

	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(supersedeCmd)
}

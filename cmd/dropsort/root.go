package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/paths"
	"github.com/dropsort/dropsort/pkg/types"
)

// Set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity  int
	configFile string

	rootCmd = &cobra.Command{
		Use:   "dropsort",
		Short: "Sort files into folders by extension",
		Long: `dropsort moves files into destination folders based on their extension,
using rules you configure once. Run it bare for the drag-and-drop window,
or use the subcommands for scripted sorting, rule management, folder
watching and undo.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			pather := paths.New()
			logging.SetupLogger(effectiveVerbosity(pather), pather.LogFilePath())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the window.
			return runGUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// effectiveVerbosity resolves the log level: the -v flag wins, the
// logging.verbosity setting is the baseline when no flag is given.
func effectiveVerbosity(pather types.Pather) int {
	if verbosity > 0 {
		return verbosity
	}
	settingsPath := pather.ConfigFilePath()
	if configFile != "" {
		settingsPath = configFile
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return verbosity
	}
	return settings.Logging.Verbosity
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default is dropsort.toml in the config dir)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(manualCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dropsort version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/paths"
	"github.com/dropsort/dropsort/pkg/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and seed the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented settings file with the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pather := paths.New()
		target := pather.ConfigFilePath()

		if _, err := os.Stat(target); err == nil {
			return errors.Newf(errors.ErrInvalidInput, "%s already exists", target)
		}
		if err := os.MkdirAll(pather.ConfigDir(), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", pather.ConfigDir())
		}
		if err := os.WriteFile(target, []byte(config.DefaultConfigContent()), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", target)
		}

		fmt.Printf("%s Wrote %s\n", style.SuccessIndicator, style.Path(target))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and where they come from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pather := paths.New()
		settingsPath := pather.ConfigFilePath()
		if configFile != "" {
			settingsPath = configFile
		}
		settings, err := config.Load(settingsPath)
		if err != nil {
			return err
		}

		fmt.Printf("config file:  %s\n", settingsPath)
		fmt.Printf("rules file:   %s\n", pather.RulesPath())
		fmt.Printf("history db:   %s\n", pather.HistoryDBPath())
		fmt.Printf("log file:     %s\n\n", pather.LogFilePath())

		fmt.Printf("sort.collision_policy = %q\n", settings.Collision())
		fmt.Printf("sort.include_hidden   = %v\n", settings.Sort.IncludeHidden)
		fmt.Printf("watch.dir             = %q\n", settings.Watch.Dir)
		fmt.Printf("watch.settle_seconds  = %d\n", settings.Watch.SettleSeconds)
		fmt.Printf("history.keep          = %d\n", settings.History.Keep)
		fmt.Printf("logging.verbosity     = %d\n", settings.Logging.Verbosity)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

package main

import (
	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/filesystem"
	"github.com/dropsort/dropsort/pkg/history"
	"github.com/dropsort/dropsort/pkg/paths"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/sorter"
	"github.com/dropsort/dropsort/pkg/types"
)

// env bundles everything the commands share: the filesystem, the XDG
// paths, the loaded settings and the rule store.
type env struct {
	fs       types.FS
	pather   types.Pather
	settings *config.Settings
	rules    *rules.Store
}

func newEnv() (*env, error) {
	fs := filesystem.NewOS()
	pather := paths.New()

	settingsPath := pather.ConfigFilePath()
	if configFile != "" {
		settingsPath = configFile
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}

	store, err := rules.NewStore(fs, pather.RulesPath())
	if err != nil {
		return nil, err
	}

	return &env{
		fs:       fs,
		pather:   pather,
		settings: settings,
		rules:    store,
	}, nil
}

// openHistory opens the journal and prunes it to the configured size.
// The caller owns the returned store.
func (e *env) openHistory() (*history.Store, error) {
	store, err := history.NewStore(e.fs, e.pather.HistoryDBPath())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryAccess, "opening history journal")
	}
	if keep := e.settings.History.Keep; keep > 0 {
		if err := store.Prune(keep); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

func (e *env) newSorter(dryRun bool, recorder sorter.Recorder) *sorter.Sorter {
	return sorter.New(e.fs, e.rules, sorter.Options{
		Collision:     e.settings.Collision(),
		IncludeHidden: e.settings.Sort.IncludeHidden,
		DryRun:        dryRun,
		Recorder:      recorder,
	})
}

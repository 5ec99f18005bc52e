package rules

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/types"
)

// ruleFile is the on-disk shape of the rule list, TOML and YAML alike.
type ruleFile struct {
	Rules []types.Rule `toml:"rules" yaml:"rules"`
}

func load(fsys types.FS, path string) (types.RuleSet, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.RuleSet{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	var f ruleFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	return types.RuleSet(f.Rules), nil
}

// save writes the rule list atomically: marshal to a sibling temp file,
// then rename over the target.
func save(fsys types.FS, path string, rules types.RuleSet) error {
	data, err := toml.Marshal(ruleFile{Rules: rules})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal rules")
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, fs.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to replace %s", path)
	}

	return nil
}

// ExportYAML renders the rule list as YAML for `dropsort rules export`.
func (s *Store) ExportYAML() ([]byte, error) {
	data, err := yaml.Marshal(ruleFile{Rules: s.List()})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal rules")
	}
	return data, nil
}

// ImportYAML replaces the rule list with the rules in data. Every rule
// is validated; on any failure the existing list is kept.
func (s *Store) ImportYAML(data []byte) (int, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, errors.Wrap(err, errors.ErrConfigParse, "failed to parse rule import")
	}

	incoming := make(types.RuleSet, 0, len(f.Rules))
	seen := make(map[string]int)
	for i, r := range f.Rules {
		r.Extensions = NormalizeExtensions(r.Extensions)
		if err := validate(r.Extensions, r.Destination, s.fs); err != nil {
			return 0, errors.Wrapf(err, errors.ErrInvalidInput, "rule %d is invalid", i)
		}
		if prev, dup := seen[r.Destination]; dup {
			return 0, errors.Newf(errors.ErrRuleExists,
				"rules %d and %d share folder %s", prev, i, r.Destination)
		}
		seen[r.Destination] = i
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Name == "" {
			r.Name = displayName(r.Destination)
		}
		incoming = append(incoming, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.rules
	s.rules = incoming
	if err := s.persist(); err != nil {
		s.rules = previous
		return 0, err
	}

	s.logger.Info().Int("ruleCount", len(incoming)).Msg("Rules imported")
	return len(incoming), nil
}

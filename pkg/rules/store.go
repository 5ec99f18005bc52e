package rules

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/logging"
	"github.com/dropsort/dropsort/pkg/types"
)

// Store owns the ordered rule list. It is safe for concurrent use:
// GUI callbacks and the watcher goroutine share one store.
type Store struct {
	mu     sync.RWMutex
	fs     types.FS
	path   string
	rules  types.RuleSet
	logger zerolog.Logger
}

// NewStore creates a store persisting to path, loading any existing
// rule list. A missing file means an empty rule set.
func NewStore(fs types.FS, path string) (*Store, error) {
	s := &Store{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("rules.store"),
	}

	rules, err := load(fs, path)
	if err != nil {
		return nil, err
	}
	s.rules = rules

	s.logger.Debug().
		Int("ruleCount", len(rules)).
		Str("path", path).
		Msg("Rule store loaded")

	return s, nil
}

// Add appends a rule mapping the given extensions to destination and
// persists the updated list. The new rule has the lowest precedence.
func (s *Store) Add(extensions []string, destination string) (types.Rule, error) {
	exts := NormalizeExtensions(extensions)
	if err := validate(exts, destination, s.fs); err != nil {
		return types.Rule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.byDestination(destination, ""); ok {
		return types.Rule{}, errors.Newf(errors.ErrRuleExists,
			"folder %s is already configured", destination).
			WithDetail("rule_id", r.ID)
	}

	rule := types.Rule{
		ID:          uuid.NewString(),
		Name:        displayName(destination),
		Extensions:  exts,
		Destination: destination,
	}
	s.rules = append(s.rules, rule)

	s.warnShadowed(len(s.rules) - 1)

	if err := s.persist(); err != nil {
		s.rules = s.rules[:len(s.rules)-1]
		return types.Rule{}, err
	}

	s.logger.Info().
		Str("rule", rule.ID).
		Str("destination", destination).
		Strs("extensions", exts).
		Msg("Rule added")

	return rule, nil
}

// Edit updates an existing rule. A nil extensions slice keeps the
// current set; an empty destination keeps the current folder.
func (s *Store) Edit(id string, extensions []string, destination string) (types.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, idx, ok := s.rules.FindByID(id)
	if !ok {
		return types.Rule{}, errors.Newf(errors.ErrRuleNotFound, "no rule with id %s", id)
	}

	updated := current
	if extensions != nil {
		updated.Extensions = NormalizeExtensions(extensions)
	}
	if destination != "" {
		updated.Destination = destination
		updated.Name = displayName(destination)
	}

	if err := validate(updated.Extensions, updated.Destination, s.fs); err != nil {
		return types.Rule{}, err
	}
	if r, ok := s.byDestination(updated.Destination, id); ok {
		return types.Rule{}, errors.Newf(errors.ErrRuleExists,
			"folder %s is already configured", updated.Destination).
			WithDetail("rule_id", r.ID)
	}

	s.rules[idx] = updated
	s.warnShadowed(idx)

	if err := s.persist(); err != nil {
		s.rules[idx] = current
		return types.Rule{}, err
	}

	s.logger.Info().Str("rule", id).Msg("Rule updated")
	return updated, nil
}

// Remove deletes the rule with the given id and persists the list.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, idx, ok := s.rules.FindByID(id)
	if !ok {
		return errors.Newf(errors.ErrRuleNotFound, "no rule with id %s", id)
	}

	s.rules = append(s.rules[:idx], s.rules[idx+1:]...)

	if err := s.persist(); err != nil {
		s.rules = append(s.rules[:idx], append(types.RuleSet{removed}, s.rules[idx:]...)...)
		return err
	}

	s.logger.Info().Str("rule", id).Str("destination", removed.Destination).Msg("Rule removed")
	return nil
}

// Reorder moves the rule with the given id to a new precedence index.
func (s *Store) Reorder(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, idx, ok := s.rules.FindByID(id)
	if !ok {
		return errors.Newf(errors.ErrRuleNotFound, "no rule with id %s", id)
	}
	if index < 0 || index >= len(s.rules) {
		return errors.Newf(errors.ErrInvalidInput, "index %d out of range", index)
	}

	previous := make(types.RuleSet, len(s.rules))
	copy(previous, s.rules)

	s.rules = append(s.rules[:idx], s.rules[idx+1:]...)
	rest := make(types.RuleSet, 0, len(s.rules)+1)
	rest = append(rest, s.rules[:index]...)
	rest = append(rest, rule)
	rest = append(rest, s.rules[index:]...)
	s.rules = rest

	if err := s.persist(); err != nil {
		s.rules = previous
		return err
	}

	s.logger.Info().Str("rule", id).Int("index", index).Msg("Rule reordered")
	return nil
}

// Get returns the rule with the given id.
func (s *Store) Get(id string) (types.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, _, ok := s.rules.FindByID(id)
	if !ok {
		return types.Rule{}, errors.Newf(errors.ErrRuleNotFound, "no rule with id %s", id)
	}
	return rule, nil
}

// List returns a copy of the rule list in precedence order.
func (s *Store) List() types.RuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(types.RuleSet, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// FindByExtension returns the first rule claiming ext, in precedence
// order. The extension may be raw; it is normalized before matching.
func (s *Store) FindByExtension(ext string) (types.Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules.FindByExtension(NormalizeExtension(ext))
}

// byDestination finds a rule claiming destination, ignoring excludeID.
// Caller holds the lock.
func (s *Store) byDestination(destination, excludeID string) (types.Rule, bool) {
	for _, r := range s.rules {
		if r.Destination == destination && r.ID != excludeID {
			return r, true
		}
	}
	return types.Rule{}, false
}

// warnShadowed logs extensions of the rule at idx that an earlier rule
// already claims. Overlap is legal; precedence resolves it.
func (s *Store) warnShadowed(idx int) {
	if shadowed := s.rules.Overlaps(idx); len(shadowed) > 0 {
		s.logger.Warn().
			Str("rule", s.rules[idx].ID).
			Strs("extensions", shadowed).
			Msg("Extensions shadowed by an earlier rule")
	}
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	return save(s.fs, s.path, s.rules)
}

func validate(exts []string, destination string, fs types.FS) error {
	if len(exts) == 0 {
		return errors.New(errors.ErrInvalidInput, "extension set is empty")
	}
	if destination == "" {
		return errors.New(errors.ErrInvalidInput, "destination is empty")
	}
	if !filepath.IsAbs(destination) {
		return errors.Newf(errors.ErrInvalidInput, "destination %s is not absolute", destination)
	}
	// A destination that does not exist yet is fine, it is created on
	// the first move. An existing non-directory is not.
	if info, err := fs.Stat(destination); err == nil && !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "destination %s is not a directory", destination)
	}
	return nil
}

func displayName(destination string) string {
	if name := filepath.Base(destination); name != "." && name != string(filepath.Separator) {
		return name
	}
	return destination
}

// Package rules implements the rule store: the ordered list of
// extension-to-folder mappings, its validation, and its persistence.
//
// Rules are kept in precedence order; the first rule claiming an
// extension wins. The store persists to rules.toml after every
// mutation so the GUI, CLI and watcher always agree on the rule list.
package rules

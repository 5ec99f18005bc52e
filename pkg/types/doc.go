// Package types defines the core types and interfaces used throughout
// dropsort. This includes the Rule and RuleSet data structures, the
// per-file and per-batch sort results, and the FS filesystem interface.
package types

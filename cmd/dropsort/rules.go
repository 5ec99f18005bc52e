package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/rules"
	"github.com/dropsort/dropsort/pkg/style"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage sorting rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in precedence order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		fmt.Println(style.RenderRuleTable(e.rules.List()))
		return nil
	},
}

var (
	addExts string
	addDest string

	rulesAddCmd = &cobra.Command{
		Use:   "add --ext EXTS --dest DIR",
		Short: "Add a rule",
		Example: `  dropsort rules add --ext pdf,epub --dest ~/Documents/Books
  dropsort rules add --ext .png,.jpg,.gif --dest ~/Pictures/Sorted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			dest, err := expandPath(addDest)
			if err != nil {
				return err
			}
			rule, err := e.rules.Add(rules.ParseExtensions(addExts), dest)
			if err != nil {
				return err
			}
			fmt.Printf("%s Added %s\n", style.SuccessIndicator, rule.Label())
			return nil
		},
	}
)

var (
	editExts string
	editDest string

	rulesEditCmd = &cobra.Command{
		Use:   "edit ID [--ext EXTS] [--dest DIR]",
		Short: "Change a rule's extensions or destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if editExts == "" && editDest == "" {
				return errors.New(errors.ErrInvalidInput, "nothing to change: pass --ext or --dest")
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			var exts []string
			if editExts != "" {
				exts = rules.ParseExtensions(editExts)
			}
			dest := ""
			if editDest != "" {
				if dest, err = expandPath(editDest); err != nil {
					return err
				}
			}
			rule, err := e.rules.Edit(args[0], exts, dest)
			if err != nil {
				return err
			}
			fmt.Printf("%s Updated %s\n", style.SuccessIndicator, rule.Label())
			return nil
		},
	}
)

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.rules.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Removed rule %s\n", style.SuccessIndicator, args[0])
		return nil
	},
}

var rulesMoveCmd = &cobra.Command{
	Use:   "move ID POSITION",
	Short: "Move a rule to a new precedence position (1 is checked first)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 1 {
			return errors.New(errors.ErrInvalidInput, "position must be a positive number")
		}
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.rules.Reorder(args[0], pos-1); err != nil {
			return err
		}
		fmt.Println(style.RenderRuleTable(e.rules.List()))
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rule set as YAML to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		data, err := e.rules.ExportYAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var rulesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the rule set with rules from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "reading %s", args[0])
		}
		e, err := newEnv()
		if err != nil {
			return err
		}
		n, err := e.rules.ImportYAML(data)
		if err != nil {
			return err
		}
		fmt.Printf("%s Imported %d rules\n", style.SuccessIndicator, n)
		return nil
	},
}

func init() {
	rulesAddCmd.Flags().StringVar(&addExts, "ext", "", "Comma separated extensions, leading dot optional")
	rulesAddCmd.Flags().StringVar(&addDest, "dest", "", "Destination folder")
	_ = rulesAddCmd.MarkFlagRequired("ext")
	_ = rulesAddCmd.MarkFlagRequired("dest")

	rulesEditCmd.Flags().StringVar(&editExts, "ext", "", "Replacement extensions, comma separated")
	rulesEditCmd.Flags().StringVar(&editDest, "dest", "", "New destination folder")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesEditCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)
	rulesCmd.AddCommand(rulesMoveCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rulesCmd.AddCommand(rulesImportCmd)
}

// expandPath resolves ~ and makes the path absolute, the rule store
// only accepts absolute destinations.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "resolving home directory")
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "resolving %s", path)
	}
	return abs, nil
}

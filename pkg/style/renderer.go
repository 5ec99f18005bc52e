package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/dropsort/dropsort/pkg/errors"
	"github.com/dropsort/dropsort/pkg/types"
)

// RenderReport renders a sort batch summary with per-file lines.
func RenderReport(report types.SortReport, dryRun bool) string {
	var b strings.Builder

	for _, res := range report.Results {
		switch res.Status {
		case types.StatusMoved:
			verb := "moved to"
			if dryRun {
				verb = "would move to"
			}
			fmt.Fprintf(&b, "%s %s %s %s\n",
				SuccessIndicator, res.Source, Muted(verb), Path(res.Destination))
		case types.StatusSkipped:
			fmt.Fprintf(&b, "%s %s %s\n",
				InfoIndicator, res.Source, Muted("skipped"))
		case types.StatusFailed:
			fmt.Fprintf(&b, "%s %s %s\n",
				ErrorIndicator, res.Source, Error(errorMessage(res.Err)))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", RenderSummary(report))
	return b.String()
}

// RenderSummary renders the one-line Moved/Skipped/Errors of a batch.
func RenderSummary(report types.SortReport) string {
	return fmt.Sprintf("Moved: %d  Skipped: %d  Errors: %d",
		report.Moved(), report.Skipped(), report.Failed())
}

// RenderRuleTable renders the rule list as a table, highest precedence
// first.
func RenderRuleTable(rules types.RuleSet) string {
	if len(rules) == 0 {
		return Muted("No rules configured. Add one with: dropsort rules add")
	}

	data := pterm.TableData{{"#", "ID", "Name", "Extensions", "Destination"}}
	for i, r := range rules {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			shortID(r.ID),
			r.Name,
			strings.Join(r.Extensions, ", "),
			r.Destination,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// pterm only fails on impossible configurations; fall back flat
		var b strings.Builder
		for _, r := range rules {
			fmt.Fprintf(&b, "%s\t%s\n", r.Label(), r.Destination)
		}
		return b.String()
	}
	return table
}

// RenderError renders an error with its code highlighted.
func RenderError(err error) string {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		return fmt.Sprintf("%s %s", ErrorIndicator, err.Error())
	}
	return fmt.Sprintf("%s %s %s",
		ErrorIndicator, Error(string(code)), errorMessage(err))
}

// errorMessage strips the [CODE] prefix our errors carry, the code is
// rendered separately.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	sortErr, ok := err.(*errors.SortError)
	if !ok {
		return err.Error()
	}
	if sortErr.Wrapped != nil {
		return fmt.Sprintf("%s: %v", sortErr.Message, sortErr.Wrapped)
	}
	return sortErr.Message
}

// shortID abbreviates a uuid for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"restyle/internal/diag"
	"restyle/internal/driver"
	"restyle/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.tsx|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run the checks, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes, re-checking until nothing changes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	settings, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, settings)
	if err != nil {
		return err
	}
	quiet, err := quietFlag(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// fix ids embed a per-run file index, so they only address one file
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	if applyAll {
		return runFixAll(cmd, target, opts, quiet)
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	}
	return runFixSelected(cmd, target, opts, fix.ApplyOptions{Mode: mode, TargetID: targetID})
}

// runFixAll drives each file to a fixed point in memory, then writes the
// result back. Conflicting fixes resolve themselves across passes.
func runFixAll(cmd *cobra.Command, target string, opts driver.Options, quiet bool) error {
	files, err := driver.ListFiles(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	analyze := driver.Analyzer(opts.Settings, opts.MaxDiagnostics)
	totalApplied := 0
	unsettled := 0

	for _, path := range files {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("fix: %w", readErr)
		}

		res, fpErr := fix.FixedPoint(path, content, analyze, 0)
		if fpErr != nil {
			return fmt.Errorf("fix %s: %w", path, fpErr)
		}
		if res.Applied == 0 {
			continue
		}

		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if writeErr := os.WriteFile(path, res.Content, mode); writeErr != nil {
			return fmt.Errorf("fix: write %s: %w", path, writeErr)
		}

		totalApplied += res.Applied
		if !res.Settled {
			unsettled++
			fmt.Fprintf(os.Stderr, "warning: %s did not settle after %d passes\n", path, res.Passes)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "%s: applied %d fix(es) in %d pass(es)\n", path, res.Applied, res.Passes)
		}
	}

	if totalApplied == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
		}
		return nil
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es) across %d file(s).\n", totalApplied, len(files))
	}
	if unsettled > 0 {
		return fmt.Errorf("fix: %d file(s) did not settle", unsettled)
	}
	return nil
}

// runFixSelected analyzes once and applies through the selection engine
// (first fix, or one addressed by id).
func runFixSelected(cmd *cobra.Command, target string, opts driver.Options, applyOpts fix.ApplyOptions) error {
	fileSet, results, err := driver.CheckDir(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fileSet, diagnostics, applyOpts)
	return reportApplyResult(res, applyErr)
}

func reportApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}

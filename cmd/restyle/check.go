package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"restyle/internal/diag"
	"restyle/internal/diagfmt"
	"restyle/internal/driver"
	"restyle/internal/source"
	"restyle/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.tsx|directory>",
	Short: "Report style violations without modifying anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("notes", false, "show secondary notes")
	checkCmd.Flags().Bool("show-fixes", false, "show available fix titles and ids")
	checkCmd.Flags().String("paths", "auto", "path rendering (auto|absolute|relative|basename)")
	checkCmd.Flags().String("progress", "off", "interactive progress view (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "skip the clean-file disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	showNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return err
	}
	showFixes, err := cmd.Flags().GetBool("show-fixes")
	if err != nil {
		return err
	}
	pathsValue, err := cmd.Flags().GetString("paths")
	if err != nil {
		return err
	}
	pathMode, err := readPathMode(pathsValue)
	if err != nil {
		return err
	}
	progressValue, err := cmd.Flags().GetString("progress")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	quiet, err := quietFlag(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, settings)
	if err != nil {
		return err
	}
	if !noCache {
		// a broken cache only disables reuse
		if cache, cacheErr := driver.OpenDiskCache("restyle"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	useProgress, err := progressEnabled(progressValue, format, quiet)
	if err != nil {
		return err
	}

	var fileSet *source.FileSet
	var results []driver.FileResult
	if useProgress {
		fileSet, results, err = checkWithProgress(cmd, target, opts)
	} else {
		fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts)
	}
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	merged := diag.NewBag(0)
	filesWithIssues := 0
	for _, r := range results {
		if r.Bag == nil || r.Bag.Len() == 0 {
			continue
		}
		filesWithIssues++
		merged.Merge(r.Bag)
	}
	merged.Sort()

	if format == "json" {
		err = diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     showNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  showFixes,
		})
		if err != nil {
			return err
		}
	} else {
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: showNotes,
			ShowFixes: showFixes,
		})
		if !quiet {
			if merged.Len() == 0 {
				fmt.Fprintf(os.Stdout, "checked %d file(s), no issues\n", len(results))
			} else {
				fmt.Fprintf(os.Stdout, "%d issue(s) in %d of %d file(s)\n",
					merged.Len(), filesWithIssues, len(results))
			}
		}
	}

	if merged.Len() > 0 {
		return errIssuesFound
	}
	return nil
}

func progressEnabled(value, format string, quiet bool) (bool, error) {
	if format == "json" || quiet {
		return false, nil
	}
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "off":
		return false, nil
	case "on":
		return true, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid --progress value %q (expected auto|on|off)", value)
	}
}

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// checkWithProgress runs the directory check in the background while a
// Bubble Tea model consumes progress events in the foreground.
func checkWithProgress(cmd *cobra.Command, target string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(target)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	opts.Events = events

	go func() {
		fs, results, runErr := driver.CheckDir(cmd.Context(), target, opts)
		outcomeCh <- checkOutcome{fileSet: fs, results: results, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel("restyle check", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

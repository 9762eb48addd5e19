package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"restyle/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the known rules with their codes",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	disabled := make(map[string]bool, len(settings.Disabled))
	for _, name := range settings.Disabled {
		disabled[name] = true
	}

	codeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	offStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)

	for _, r := range rules.Names() {
		name := nameStyle.Render(r.Name)
		suffix := ""
		if disabled[r.Name] {
			name = offStyle.Render(r.Name)
			suffix = "  (disabled)"
		}
		fmt.Fprintf(os.Stdout, "%s  %s%s\n", codeStyle.Render(r.Code.ID()), name, suffix)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/sdk/solver"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func actionName(a game.Action) string {
	switch a {
	case game.Fold:
		return "fold"
	case game.Pass:
		return "pass"
	case game.Call:
		return "call"
	case game.Raise:
		return "raise"
	case game.Bet:
		return "bet"
	case solver.ContinueBlueprint:
		return "blueprint"
	case solver.ContinueFold:
		return "fold-biased"
	case solver.ContinueCall:
		return "call-biased"
	case solver.ContinueRaise:
		return "raise-biased"
	}
	return string(a)
}

func styled(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

// renderReport prints one strategy table per player, then utilities.
func renderReport(r *solver.Report) string {
	var b strings.Builder

	headers := []string{"info set"}
	for _, a := range r.Actions {
		headers = append(headers, actionName(a))
	}

	for _, pr := range r.Players {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(styled).
			Headers(headers...)
		for _, is := range pr.InfoSets {
			row := []string{is.Label}
			for _, p := range is.Strategy {
				row = append(row, fmt.Sprintf("%.3f", p))
			}
			t.Row(row...)
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("Player %d", pr.Player)))
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(r.Utilities) > 0 {
		parts := make([]string, len(r.Utilities))
		for i, u := range r.Utilities {
			parts[i] = fmt.Sprintf("p%d=%+.4f", i, u)
		}
		b.WriteString(titleStyle.Render("Expected utility: "))
		b.WriteString(strings.Join(parts, "  "))
	}
	return b.String()
}

// renderMatrixStrategy prints a mixed strategy over named actions.
func renderMatrixStrategy(names []string, strategy []float64) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styled).
		Headers("action", "probability")
	for i, name := range names {
		t.Row(name, fmt.Sprintf("%.4f", strategy[i]))
	}
	return titleStyle.Render("Average strategy") + "\n" + t.Render()
}

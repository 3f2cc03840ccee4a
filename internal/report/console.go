package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var printer = message.NewPrinter(language.English)

// Money rounds half away from zero to cents and groups thousands.
func Money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	return printer.Sprintf("%.2f", d.InexactFloat64())
}

// Percent formats a return ratio (0.1234 -> "12.3400%").
func Percent(r float64) string {
	return decimal.NewFromFloat(r).Mul(decimal.NewFromInt(100)).StringFixed(4) + "%"
}

func signed(r float64) string {
	s := Percent(r)
	if r < 0 {
		return lossStyle.Render(s)
	}
	return gainStyle.Render(s)
}

// PrintSummary writes the strategy and both buy-and-hold baselines.
func PrintSummary(w io.Writer, s *analysis.Summary, names model.Instruments) error {
	if s == nil {
		return fmt.Errorf("nil summary")
	}
	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Initial investment:"), Money(s.Strategy.InitialCapital)),
		fmt.Sprintf("%s %s to %s (%.2f years)", labelStyle.Render("Period:"),
			s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Years),
		"",
	}

	title := "Momentum strategy"
	if names.Signal != "" {
		title += " (signal " + names.Signal + ")"
	}
	lines = append(lines, headingStyle.Render(title))
	lines = append(lines, performanceLines(s.Strategy)...)
	lines = append(lines, fmt.Sprintf("  %-20s %d", "Number of rotations:", s.Rotations), "")

	lines = append(lines, headingStyle.Render("Buy and hold "+s.Short.Name))
	lines = append(lines, performanceLines(s.Short)...)
	lines = append(lines, "")
	lines = append(lines, headingStyle.Render("Buy and hold "+s.Long.Name))
	lines = append(lines, performanceLines(s.Long)...)

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func performanceLines(p analysis.Performance) []string {
	return []string{
		fmt.Sprintf("  %-20s %s", "Final value:", Money(p.FinalValue)),
		fmt.Sprintf("  %-20s %s", "Total return:", signed(p.TotalReturn)),
		fmt.Sprintf("  %-20s %s", "Annualized return:", signed(p.AnnualizedReturn)),
	}
}

// PrintSweep writes one line per ranked lookback window.
func PrintSweep(w io.Writer, ranked []analysis.RankedRun) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%4s  %8s  %14s  %12s  %12s  %9s", "rank", "lookback", "final value", "total", "annualized", "rotations"))); err != nil {
		return err
	}
	for _, r := range ranked {
		s := r.Summary.Strategy
		_, err := fmt.Fprintf(w, "%4d  %8d  %14s  %12s  %12s  %9d\n",
			r.Rank, r.LookbackWindow, Money(s.FinalValue), Percent(s.TotalReturn), Percent(s.AnnualizedReturn), r.Summary.Rotations)
		if err != nil {
			return err
		}
	}
	return nil
}

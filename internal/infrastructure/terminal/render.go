// Package terminal renders analysis sessions for the command line.
package terminal

import (
	"fmt"
	"strings"

	"wallet_risk_analyzer/internal/app/service"
	"wallet_risk_analyzer/internal/domain/entity"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

// Band colors, matching the web palette of each risk band.
var bandColors = map[entity.RiskBand]lipgloss.Color{
	entity.BandLow:      lipgloss.Color("#16A34A"),
	entity.BandMedium:   lipgloss.Color("#CA8A04"),
	entity.BandHigh:     lipgloss.Color("#EA580C"),
	entity.BandCritical: lipgloss.Color("#DC2626"),
}

var (
	colorMuted = lipgloss.Color("#6B7280")
	colorError = lipgloss.Color("#DC2626")
	colorTitle = lipgloss.Color("#2563EB")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(22)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	warningStyle = lipgloss.NewStyle().Foreground(bandColors[entity.BandMedium])
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func bandStyle(band entity.RiskBand) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(bandColors[band])
}

// RenderSnapshot renders the session snapshot. Only the ready state shows a report.
func RenderSnapshot(snap entity.SessionSnapshot) string {
	switch snap.State {
	case entity.StateInputError, entity.StateRequestError:
		return errorStyle.Render("✗ "+snap.Error) + "\n"
	case entity.StateReady:
	default:
		return mutedStyle.Render(fmt.Sprintf("Session is %s", snap.State)) + "\n"
	}
	if snap.Report == nil || snap.Metrics == nil {
		return mutedStyle.Render("No report available") + "\n"
	}

	report := snap.Report
	metrics := snap.Metrics
	ra := report.RiskAnalysis
	band := bandStyle(metrics.Classification.Band)

	var b strings.Builder
	title := "Wallet Risk Analysis"
	if snap.Demo {
		title += " (demo data)"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(displayAddress(snap) + "\n\n")

	header := lipgloss.JoinVertical(lipgloss.Left,
		band.Render(fmt.Sprintf("%d/100", ra.RiskScore)),
		band.Render(ra.RiskLevel),
	)
	b.WriteString(boxStyle.BorderForeground(bandColors[metrics.Classification.Band]).Render(header) + "\n\n")

	rows := [][2]string{
		{"Wallet age", fmt.Sprintf("%d days", ra.WalletAgeDays)},
		{"Transactions", fmt.Sprintf("%d", ra.TotalTransactions)},
		{"Token diversity", fmt.Sprintf("%d tokens", ra.TokenDiversity)},
		{"Suspicious contacts", fmt.Sprintf("%d", ra.SuspiciousInteractions)},
		{"Contract approvals", fmt.Sprintf("%d", ra.ContractApprovals)},
		{"Balance", fmt.Sprintf("%.4f ETH", ra.BalanceNative)},
		{"First transaction", orDash(report.TxSummary.FirstTransaction.Raw)},
		{"Last transaction", orDash(report.TxSummary.LastTransaction.Raw)},
		{"Total volume", fmt.Sprintf("%.3f ETH", report.TxSummary.TotalVolumeNative)},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]) + row[1] + "\n")
	}

	if len(ra.Warnings) > 0 {
		b.WriteString("\n" + titleStyle.Render("Warnings") + "\n")
		for _, w := range ra.Warnings {
			b.WriteString(warningStyle.Render("⚠ "+w) + "\n")
		}
	}

	b.WriteString("\n" + titleStyle.Render("Risk factors") + "\n")
	for _, p := range metrics.Radar {
		b.WriteString(labelStyle.Render(p.Subject) + bar(p.Value, p.FullMark) + fmt.Sprintf(" %3.0f", p.Value) + "\n")
	}

	tl := metrics.Timeline
	if tl.Days > 0 {
		b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Activity (last %d days)", tl.Days)) + "\n")
		b.WriteString(labelStyle.Render("Transactions") + fmt.Sprintf("%d over %d active days", tl.TotalTxCount, tl.ActiveDays) + "\n")
		b.WriteString(labelStyle.Render("Volume") + fmt.Sprintf("%.3f ETH", tl.TotalVolume) + "\n")
		if tl.BusiestDay != "" {
			b.WriteString(labelStyle.Render("Busiest day") + fmt.Sprintf("%s (%d tx)", tl.BusiestDay, tl.BusiestDayTx) + "\n")
		}
	}

	if len(report.TokenDistribution) > 0 {
		b.WriteString("\n" + titleStyle.Render("Token distribution") + "\n")
		for _, h := range report.TokenDistribution {
			b.WriteString(labelStyle.Render(h.Symbol) + bar(h.Percentage, 100) + fmt.Sprintf(" %5.1f%%  $%.2f", h.Percentage, h.ValueUSD) + "\n")
		}
	}

	return b.String()
}

// RenderBatch renders a one-line summary per analyzed wallet.
func RenderBatch(results []service.BatchResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Analyzed %d wallets", len(results))) + "\n")
	for _, r := range results {
		addr := r.Address.Checksum()
		switch {
		case r.Err != nil:
			b.WriteString(addr + "  " + errorStyle.Render("✗ "+entity.MessageRequestFailed) + "\n")
		case r.Report == nil || r.Metrics == nil:
			b.WriteString(addr + "  " + mutedStyle.Render("no report") + "\n")
		default:
			style := bandStyle(r.Metrics.Classification.Band)
			b.WriteString(addr + "  " + style.Render(fmt.Sprintf("%3d/100 %s", r.Report.RiskAnalysis.RiskScore, r.Report.RiskAnalysis.RiskLevel)) + "\n")
		}
	}
	return b.String()
}

func displayAddress(snap entity.SessionSnapshot) string {
	if snap.Checksum != "" {
		return mutedStyle.Render(snap.Checksum)
	}
	return mutedStyle.Render(snap.Address)
}

func bar(value, full float64) string {
	if full <= 0 {
		return strings.Repeat("░", barWidth)
	}
	filled := int(value / full * barWidth)
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

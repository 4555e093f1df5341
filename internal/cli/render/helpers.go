package render

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	addressStyle = color.New(color.FgWhite)
	familyStyle  = color.New(color.FgCyan, color.Bold)
	faintStyle   = color.New(color.Faint)
	missingStyle = color.New(color.FgRed)
	l2Style      = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// familyTitle turns "batch-relay" into "Batch Relay"
func familyTitle(family domain.ContractFamily) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(family), "-", " "))
}

// reasonText describes a not-found reason
func reasonText(reason domain.NotFoundReason) string {
	switch reason {
	case domain.NoDeploymentForNetwork:
		return "not deployed on this network"
	case domain.NoDeploymentForFamily:
		return "no deployment published"
	case domain.NoDeploymentForVersion:
		return "no deployment for this version"
	}
	return string(reason)
}

// networkLabel renders "optimism (10) [L2]"
func networkLabel(network *domain.Network) string {
	if network == nil {
		return ""
	}
	label := network.String() + " (" + network.ChainIDString() + ")"
	if network.L2 {
		label += " " + l2Style.Sprint("[L2]")
	}
	return label
}

// addressOrDash returns "-" for the zero address
func addressOrDash(addr common.Address) string {
	if addr == (common.Address{}) {
		return "-"
	}
	return addr.Hex()
}

// shortHash abbreviates long hex strings as 0x1234…abcd
func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:6] + "…" + hash[len(hash)-4:]
}

// newTable returns a borderless table writer
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	return t
}

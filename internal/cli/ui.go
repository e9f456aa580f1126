package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleFrom   = styleCell.Foreground(colorGray)
	styleTo     = styleCell.Foreground(colorGreen)
	styleNote   = styleCell.Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(displayPath(path)))
}

// =============================================================================
// Previews
// =============================================================================

// updateTable renders one row per dependency change.
func updateTable(results []pipeline.UpdateResult) string {
	var rows [][]string
	for _, r := range results {
		for _, t := range r.Targets {
			rows = append(rows, []string{
				r.Package.Name(),
				t.Dependency.Name,
				t.Dependency.Kind.String(),
				t.From().String(),
				t.Comparator.String(),
				available(t),
			})
		}
	}
	return previewTable([]string{"Package", "Dependency", "Kind", "From", "To", "Latest"}, rows, 3)
}

// available notes a newer stable version the target does not reach.
func available(t deps.Target) string {
	c, ok := t.Available()
	if !ok {
		return ""
	}
	return "(" + c.String() + " available)"
}

// bumpTable renders one row per package version change.
func bumpTable(results []pipeline.BumpResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Package.Name(),
			displayPath(r.Package.Path()),
			r.From.String(),
			r.To.String(),
		})
	}
	return previewTable([]string{"Package", "Manifest", "From", "To"}, rows, 2)
}

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// previewTable styles column from and the one after it as before and after.
// Columns past them are notes.
func previewTable(headers []string, rows [][]string, from int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader
			case col == from+1:
				return styleTo
			case col == from:
				return styleFrom
			}
			return styleCell
		}).
		Render()
}

// displayPath shortens path relative to the working directory when it is
// below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

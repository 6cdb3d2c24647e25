package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableSizeStyle   = lipgloss.NewStyle().Align(lipgloss.Right)
)

// OutputFile describes one file produced by a build.
type OutputFile struct {
	Path string
	Size int
}

// RenderOutputTable renders the files produced by a build with a total row
// when there is more than one file.
func RenderOutputTable(files []OutputFile) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("FILE", "SIZE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 1:
				return tableSizeStyle
			default:
				return lipgloss.NewStyle()
			}
		})

	total := 0
	for _, f := range files {
		tbl.Row(StyleNoun.Render(f.Path), formatSize(f.Size))
		total += f.Size
	}
	if len(files) > 1 {
		tbl.Row(StyleDim.Render("total"), formatSize(total))
	}

	return tbl.String()
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + " MiB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + " KiB"
	default:
		return strconv.Itoa(n) + " B"
	}
}

package output

import (
	"strconv"
	"strings"
)

// ModifiedItem is a changed manifest entry and its rendered diff.
type ModifiedItem struct {
	Name string
	Diff string
}

// RenderDiff renders manifest changes grouped by kind of change.
func RenderDiff(added, removed []string, modified []ModifiedItem) string {
	if len(added) == 0 && len(removed) == 0 && len(modified) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder

	if len(added) > 0 {
		writeSection(&sb, "Added:", "+", StatusAdded, added)
	}
	if len(removed) > 0 {
		writeSection(&sb, "Removed:", "-", StatusRemoved, removed)
	}
	if len(modified) > 0 {
		style := StatusStyle(StatusModified)
		sb.WriteString(style.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(style.Render(mod.Name))
			sb.WriteString("\n")
			sb.WriteString(IndentDiff(mod.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(added), len(removed), len(modified)))
	sb.WriteString("\n")

	return sb.String()
}

func writeSection(sb *strings.Builder, header, marker, status string, names []string) {
	style := StatusStyle(status)
	sb.WriteString(style.Render(header))
	sb.WriteString("\n")
	for _, name := range names {
		sb.WriteString("  " + marker + " ")
		sb.WriteString(style.Render(name))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func diffSummary(added, removed, modified int) string {
	if added == 0 && removed == 0 && modified == 0 {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, strconv.Itoa(added)+" added")
	}
	if removed > 0 {
		parts = append(parts, strconv.Itoa(removed)+" removed")
	}
	if modified > 0 {
		parts = append(parts, strconv.Itoa(modified)+" modified")
	}
	return strings.Join(parts, ", ")
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/fsmiamoto/promptcraft/internal/resolver"
)

const (
	tableIndent    = "  "
	columnGap      = "  "
	maxNameWidth   = 32
	minDescWidth   = 20
	separatorRune  = "─"
	truncationTail = "…"
)

// CommandTable writes the --list table for cmds to out, fitted to the
// terminal width when out is a terminal.
func (c *Console) CommandTable(cmds []resolver.CommandInfo) {
	fmt.Fprint(c.out, renderCommandTable(cmds, TerminalWidth(c.out), c.outStyles))
}

// renderCommandTable lays out cmds in Command / Source / Description
// columns. Long names are truncated; descriptions wrap under their column
// when width leaves enough room, and are left whole when width is 0.
func renderCommandTable(cmds []resolver.CommandInfo, width int, st styles) string {
	nameW := runewidth.StringWidth("Command")
	srcW := runewidth.StringWidth("Source")
	for _, cmd := range cmds {
		nameW = max(nameW, min(runewidth.StringWidth(cmd.Name), maxNameWidth))
		srcW = max(srcW, runewidth.StringWidth(string(cmd.Source)))
	}

	descW := 0
	if width > 0 {
		descW = width - len(tableIndent) - nameW - len(columnGap) - srcW - len(columnGap)
		if descW < minDescWidth {
			descW = 0
		}
	}

	rows := make([][]string, len(cmds))
	sepDescW := runewidth.StringWidth("Description")
	for i, cmd := range cmds {
		rows[i] = wrapWords(cmd.Description, descW)
		for _, line := range rows[i] {
			sepDescW = max(sepDescW, runewidth.StringWidth(line))
		}
	}

	var b strings.Builder
	b.WriteString(tableIndent)
	b.WriteString(st.header.Render(padRight("Command", nameW)))
	b.WriteString(columnGap)
	b.WriteString(st.header.Render(padRight("Source", srcW)))
	b.WriteString(columnGap)
	b.WriteString(st.header.Render("Description"))
	b.WriteString("\n")

	b.WriteString(tableIndent)
	b.WriteString(st.dim.Render(strings.Repeat(separatorRune, nameW)))
	b.WriteString(columnGap)
	b.WriteString(st.dim.Render(strings.Repeat(separatorRune, srcW)))
	b.WriteString(columnGap)
	b.WriteString(st.dim.Render(strings.Repeat(separatorRune, sepDescW)))
	b.WriteString("\n")

	continuation := strings.Repeat(" ", len(tableIndent)+nameW+len(columnGap)+srcW+len(columnGap))
	for i, cmd := range cmds {
		name := ansi.Truncate(cmd.Name, maxNameWidth, truncationTail)
		b.WriteString(tableIndent)
		b.WriteString(st.name.Render(padRight(name, nameW)))
		b.WriteString(columnGap)
		b.WriteString(st.sourceStyle(string(cmd.Source)).Render(padRight(string(cmd.Source), srcW)))
		b.WriteString(columnGap)
		for j, line := range rows[i] {
			if j > 0 {
				b.WriteString("\n")
				b.WriteString(continuation)
			}
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Popup frames a titled body the way confirmation dialogs look.
func Popup(title, body string) string {
	head := TitleStyle().Render(title)
	return Box().Padding(0, 2).Render(head + "\n\n" + body)
}

// Overlay centers box over a dimmed background of width x height cells.
// Zero dimensions are taken from the background.
func Overlay(background, box string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	if width <= 0 {
		for _, ln := range bgLines {
			if w := xansi.StringWidth(ln); w > width {
				width = w
			}
		}
	}
	if height <= 0 {
		height = len(bgLines)
	}

	boxLines := strings.Split(box, "\n")
	boxW := lipgloss.Width(box)
	if width < boxW {
		width = boxW
	}
	if height < len(boxLines) {
		height = len(boxLines)
	}
	top := (height - len(boxLines)) / 2
	left := (width - boxW) / 2

	dim := lipgloss.NewStyle().Foreground(current.Backdrop).Faint(true)
	paint := func(s string) string {
		if s == "" {
			return ""
		}
		return dim.Render(s)
	}

	out := make([]string, height)
	for i := 0; i < height; i++ {
		plain := ""
		if i < len(bgLines) {
			plain = xansi.Strip(bgLines[i])
		}
		if pad := width - xansi.StringWidth(plain); pad > 0 {
			plain += strings.Repeat(" ", pad)
		}

		bi := i - top
		if bi < 0 || bi >= len(boxLines) {
			out[i] = paint(strings.TrimRight(plain, " "))
			continue
		}
		row := boxLines[bi]
		if pad := boxW - xansi.StringWidth(row); pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		leftPart := xansi.Truncate(plain, left, "")
		rightPart := xansi.TruncateLeft(plain, left+boxW, "")
		out[i] = paint(leftPart) + row + paint(strings.TrimRight(rightPart, " "))
	}
	return strings.Join(out, "\n")
}

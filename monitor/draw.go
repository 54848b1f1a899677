package monitor

import (
	"github.com/gdamore/tcell/v2"
)

var (
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	pcStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	setStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}

// box draws a w by h frame with its top left corner at x, y and an
// optional label set into the top edge.
func box(s tcell.Screen, x, y, w, h int, label string) {
	s.SetContent(x, y, tcell.RuneULCorner, nil, dimStyle)
	s.SetContent(x+w, y, tcell.RuneURCorner, nil, dimStyle)
	s.SetContent(x, y+h, tcell.RuneLLCorner, nil, dimStyle)
	s.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, dimStyle)
	for col := x + 1; col < x+w; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, dimStyle)
		s.SetContent(col, y+h, tcell.RuneHLine, nil, dimStyle)
	}
	for row := y + 1; row < y+h; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, dimStyle)
		s.SetContent(x+w, row, tcell.RuneVLine, nil, dimStyle)
	}

	if label != "" {
		drawString(s, x+2, y, labelStyle, " "+label+" ")
	}
}

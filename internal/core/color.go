package core

// Color is the role of a screen cell. The platform renderer decides how
// each role looks, so games never pick terminal colors themselves.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHUD           // status line
	ColorBorder        // board frame
	ColorHead
	ColorBody
	ColorFood
	ColorOverlay // message box frame
	ColorAlert   // message box title
)

package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background     tcell.Color
	Foreground     tcell.Color
	HeaderBg       tcell.Color
	HeaderFg       tcell.Color
	TitleFg        tcell.Color
	TitleActiveBg  tcell.Color
	TitleActiveFg  tcell.Color
	CursorBg       tcell.Color
	CursorFg       tcell.Color
	CursorIdleBg   tcell.Color
	HighlightBg    tcell.Color
	HighlightFg    tcell.Color
	DirectoryFg    tcell.Color
	FileFg         tcell.Color
	SelectedFg     tcell.Color
	BadgeFg        tcell.Color
	MutedFg        tcell.Color
	ErrorFg        tcell.Color
	FooterBg       tcell.Color
	FooterFg       tcell.Color
	FlashBg        tcell.Color
	FlashFg        tcell.Color
	OverlayBg      tcell.Color
	OverlayFg      tcell.Color
	SeparatorColor tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:     tcell.ColorDefault,
		Foreground:     tcell.ColorDefault,
		HeaderBg:       tcell.ColorDefault,
		HeaderFg:       tcell.ColorDefault,
		TitleFg:        tcell.ColorLightSlateGray,
		TitleActiveBg:  tcell.Color33,
		TitleActiveFg:  tcell.ColorWhite,
		CursorBg:       tcell.Color33,
		CursorFg:       tcell.ColorWhite,
		CursorIdleBg:   tcell.Color238,
		HighlightBg:    tcell.Color24,
		HighlightFg:    tcell.ColorWhite,
		DirectoryFg:    tcell.Color33,
		FileFg:         tcell.ColorDefault,
		SelectedFg:     tcell.Color214,
		BadgeFg:        tcell.Color44,
		MutedFg:        tcell.ColorLightSlateGray,
		ErrorFg:        tcell.ColorRed,
		FooterBg:       tcell.ColorDefault,
		FooterFg:       tcell.ColorDefault,
		FlashBg:        tcell.ColorGreen,
		FlashFg:        tcell.ColorBlack,
		OverlayBg:      tcell.Color235,
		OverlayFg:      tcell.Color252,
		SeparatorColor: tcell.Color238,
	}
}

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	shutterTeal      = color.NRGBA{R: 0, G: 137, B: 123, A: 255}
	shutterTealLight = color.NRGBA{R: 77, G: 208, B: 190, A: 255}
	slateLight       = color.NRGBA{R: 243, G: 246, B: 248, A: 255}
	slateDark        = color.NRGBA{R: 24, G: 29, B: 34, A: 255}
	tealSelection    = color.NRGBA{R: 0, G: 137, B: 123, A: 64}
)

// ShooterTheme tints the default theme teal on slate and tightens padding so
// the preview gets most of the window.
type ShooterTheme struct{}

func NewShooterTheme() fyne.Theme {
	return &ShooterTheme{}
}

func (t *ShooterTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return slateDark
		}
		return slateLight

	case theme.ColorNamePrimary, theme.ColorNameFocus:
		if variant == theme.VariantDark {
			return shutterTealLight
		}
		return shutterTeal

	case theme.ColorNameSelection:
		return tealSelection

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ShooterTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ShooterTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ShooterTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 3
	}
	return theme.DefaultTheme().Size(name)
}

package gui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var editorFont rl.Font
var editorFontBold rl.Font
var fontsLoaded bool

// Dark indigo theme shared by every panel.
var (
	ColorBgDark    = rl.NewColor(10, 10, 15, 255)
	ColorBgPanel   = rl.NewColor(18, 18, 24, 245)
	ColorBgElement = rl.NewColor(28, 28, 38, 255)
	ColorBgHover   = rl.NewColor(38, 38, 52, 255)
	ColorBgActive  = rl.NewColor(48, 48, 65, 255)

	ColorAccent      = rl.NewColor(108, 99, 255, 255)
	ColorAccentLight = rl.NewColor(167, 139, 250, 255)

	ColorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	ColorTextSecondary = rl.NewColor(200, 200, 208, 255)
	ColorTextMuted     = rl.NewColor(119, 119, 119, 255)

	ColorBorder    = rl.NewColor(255, 255, 255, 13)
	ColorSelection = rl.NewColor(108, 99, 255, 60)
	ColorWarning   = rl.NewColor(180, 80, 80, 220)
)

// InitStyle loads the editor fonts (once) and applies the raygui theme. It
// needs an open window.
func InitStyle(logger *zap.Logger, fontDir string) {
	if !fontsLoaded {
		fontsLoaded = true

		editorFont = rl.LoadFontEx(fontDir+"/Outfit-Regular.ttf", 48, nil)
		if editorFont.Texture.ID > 0 {
			rl.SetTextureFilter(editorFont.Texture, rl.FilterBilinear)
			gui.SetFont(editorFont)
		} else {
			logger.Warn("font not loaded, using default", zap.String("font", "Outfit-Regular"))
		}

		editorFontBold = rl.LoadFontEx(fontDir+"/Outfit-Bold.ttf", 48, nil)
		if editorFontBold.Texture.ID > 0 {
			rl.SetTextureFilter(editorFontBold.Texture, rl.FilterBilinear)
		}
	}

	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(ColorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(ColorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(ColorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(ColorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(ColorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(ColorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(ColorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(ColorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawText falls back to the default raylib font when the editor font is missing.
func drawText(font rl.Font, text string, x, y int32, size float32, color rl.Color) {
	if font.Texture.ID > 0 {
		rl.DrawTextEx(font, text, rl.Vector2{X: float32(x), Y: float32(y)}, size, 0, color)
	} else {
		rl.DrawText(text, x, y, int32(size), color)
	}
}

func hovered(r rl.Rectangle) bool {
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), r)
}

func row(bounds rl.Rectangle, y, h float32) rl.Rectangle {
	return rl.Rectangle{X: bounds.X, Y: y, Width: bounds.Width, Height: h}
}

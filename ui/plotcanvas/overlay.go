package plotcanvas

import (
	"fmt"
	"image"
	"image/color"
)

const dashLength = 4

// drawDashedRect draws a dashed rectangle outline, used for the rubber-band
// zoom box and the extraction box.
func drawDashedRect(img *image.RGBA, r image.Rectangle, col color.RGBA, width int) {
	r = r.Canon()
	if width < 1 {
		width = 1
	}
	for t := 0; t < width; t++ {
		drawDashedHLine(img, r.Min.X, r.Max.X, r.Min.Y+t, col)
		drawDashedHLine(img, r.Min.X, r.Max.X, r.Max.Y-t, col)
		drawDashedVLine(img, r.Min.X+t, r.Min.Y, r.Max.Y, col)
		drawDashedVLine(img, r.Max.X-t, r.Min.Y, r.Max.Y, col)
	}
}

func drawDashedHLine(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		if ((x-x0)/dashLength)%2 == 0 {
			setPixel(img, x, y, col)
		}
	}
}

func drawDashedVLine(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		if ((y-y0)/dashLength)%2 == 0 {
			setPixel(img, x, y, col)
		}
	}
}

func drawHLine(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		setPixel(img, x, y, col)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		setPixel(img, x, y, col)
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

// 3x5 bitmap glyphs for axis tick labels on the raster-drawn heatmap pane.
// The chart-rendered spectrum pane does not use these.
var tinyGlyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b010, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
}

// drawTinyLabel renders text with the bitmap glyphs, anchored at (x, y) as
// the top-left corner. Unknown runes advance the cursor without drawing.
func drawTinyLabel(img *image.RGBA, text string, x, y int, col color.RGBA) {
	cx := x
	for _, r := range text {
		glyph, ok := tinyGlyphs[r]
		if ok {
			for row := 0; row < 5; row++ {
				for bit := 0; bit < 3; bit++ {
					if glyph[row]&(1<<(2-bit)) != 0 {
						setPixel(img, cx+bit, y+row, col)
					}
				}
			}
		}
		cx += 4
	}
}

// tinyLabelWidth returns the pixel width of text rendered by drawTinyLabel.
func tinyLabelWidth(text string) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return n*4 - 1
}

// formatTick trims a tick value for display.
func formatTick(v float64) string {
	s := fmt.Sprintf("%.4g", v)
	return s
}

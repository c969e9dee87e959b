package render

// Table geometry shared by both renderers. The PDF consumes the widths
// as millimeters on an A4 page; the preview converts the same widths to
// percentages of the table, so the two layouts cannot drift apart.
var (
	tableHeaders = [5]string{"DESCRIPTION", "QTY", "PRICE", "OFF %", "TOTAL"}
	tableWidths  = [5]float64{85, 20, 25, 25, 25}
	tableAligns  = [5]string{"L", "C", "R", "R", "R"}
)

// Page geometry (A4, millimeters).
const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	marginRight  = 20.0
	lineHeight   = 5.0
	footerMargin = 50.0 // instructions must not run into this band
)

type rgb struct{ r, g, b int }

// Palette shared by both renderers.
var (
	colorBand     = rgb{248, 250, 252}
	colorAccent   = rgb{111, 115, 120}
	colorInk      = rgb{26, 32, 44}
	colorMuted    = rgb{113, 128, 150}
	colorBody     = rgb{45, 55, 72}
	colorNegative = rgb{245, 101, 101}
	colorBorder   = rgb{226, 232, 240}
	colorWhite    = rgb{255, 255, 255}
)

func (c rgb) hex() string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, 7)
	out = append(out, '#')
	for _, v := range []int{c.r, c.g, c.b} {
		out = append(out, digits[v>>4], digits[v&0x0f])
	}
	return string(out)
}

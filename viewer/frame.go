package viewer

const (
	SCREEN_BASE   = 0x0200 // first byte of the pixel region
	SCREEN_WIDTH  = 32
	SCREEN_HEIGHT = 32
	SCREEN_SIZE   = SCREEN_WIDTH * SCREEN_HEIGHT
)

// palette maps the low nibble of a memory byte to RGBA.
var palette = [16][4]uint8{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0xff, 0xff, 0xff, 0xff}, // white
	{0x88, 0x00, 0x00, 0xff}, // red
	{0xaa, 0xff, 0xee, 0xff}, // cyan
	{0xcc, 0x44, 0xcc, 0xff}, // purple
	{0x00, 0xcc, 0x55, 0xff}, // green
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0xee, 0xee, 0x77, 0xff}, // yellow
	{0xdd, 0x88, 0x55, 0xff}, // orange
	{0x66, 0x44, 0x00, 0xff}, // brown
	{0xff, 0x77, 0x77, 0xff}, // light red
	{0x33, 0x33, 0x33, 0xff}, // dark grey
	{0x77, 0x77, 0x77, 0xff}, // grey
	{0xaa, 0xff, 0x66, 0xff}, // light green
	{0x00, 0x88, 0xff, 0xff}, // light blue
	{0xbb, 0xbb, 0xbb, 0xff}, // light grey
}

// Color returns the RGBA bytes val is drawn with.
func Color(val uint8) [4]uint8 {
	return palette[val&0x0F]
}

// Frame writes one RGBA pixel per byte of mem into pix, which must
// hold 4*len(mem) bytes. Excess bytes on either side are ignored.
func Frame(mem []uint8, pix []byte) {
	for i, v := range mem {
		if 4*i+4 > len(pix) {
			return
		}
		c := Color(v)
		copy(pix[4*i:4*i+4], c[:])
	}
}

package engine

// Frame buffer dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// FrameBuffer is the 64x32 monochrome pixel grid, indexed [row][column].
type FrameBuffer [DisplayHeight][DisplayWidth]bool

// Pixel returns whether the pixel at the given column and row is set.
// Coordinates wrap around the display edges.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	return fb[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// clear resets all pixels.
func (fb *FrameBuffer) clear() {
	*fb = FrameBuffer{}
}

// toggle flips the pixel at the given column and row and returns true if the
// pixel was erased, that is, it transitioned from set to unset.
func (fb *FrameBuffer) toggle(x, y int) bool {
	row := &fb[wrap(y, DisplayHeight)]
	col := wrap(x, DisplayWidth)
	row[col] = !row[col]
	return !row[col]
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

package image

// Fallback cell pixel dimensions for terminals that do not report pixel
// sizes. Typical for an 80-column terminal with a standard bitmap font.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// DetectCellSize returns the pixel dimensions of a single terminal cell.
// On Unix it queries the controlling terminal with TIOCGWINSZ; when the
// terminal reports no pixel dimensions (or the platform has no ioctl) the
// common 8x16 default is returned.
func DetectCellSize() (cellW, cellH int) {
	w, h, err := cellSizeIoctl()
	if err == nil && w > 0 && h > 0 {
		return w, h
	}
	return defaultCellW, defaultCellH
}

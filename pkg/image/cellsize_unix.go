//go:build unix

package image

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// cellSizeIoctl reads the terminal window size via TIOCGWINSZ and derives
// the per-cell pixel dimensions from the pixel and cell counts.
func cellSizeIoctl() (cellW, cellH int, err error) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return 0, 0, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	ws, err := unix.IoctlGetWinsize(int(tty.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("TIOCGWINSZ: %w", err)
	}
	if ws.Xpixel == 0 || ws.Ypixel == 0 || ws.Col == 0 || ws.Row == 0 {
		return 0, 0, fmt.Errorf("terminal reported zero dimensions")
	}

	cellW = int(ws.Xpixel) / int(ws.Col)
	cellH = int(ws.Ypixel) / int(ws.Row)
	if cellW <= 0 || cellH <= 0 {
		return 0, 0, fmt.Errorf("computed cell size %dx%d", cellW, cellH)
	}
	return cellW, cellH, nil
}

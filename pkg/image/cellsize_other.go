//go:build !unix

package image

import "errors"

func cellSizeIoctl() (cellW, cellH int, err error) {
	return 0, 0, errors.New("cell size ioctl not supported on this platform")
}

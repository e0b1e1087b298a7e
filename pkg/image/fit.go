package image

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// FitCells scales an image down so it fits inside a grid of maxCols x
// maxRows terminal cells, preserving aspect ratio. Each cell is cellW x
// cellH pixels (zero values fall back to the common 8x16 cell).
//
// Images that already fit are returned unchanged; FitCells never upscales.
// Downscaled output gets a light sharpen pass to recover edge detail lost
// to resampling.
func FitCells(img image.Image, maxCols, maxRows, cellW, cellH int) image.Image {
	if img == nil {
		return nil
	}
	if cellW <= 0 {
		cellW = defaultCellW
	}
	if cellH <= 0 {
		cellH = defaultCellH
	}
	if maxCols <= 0 {
		maxCols = 1
	}
	if maxRows <= 0 {
		maxRows = 1
	}

	maxW := maxCols * cellW
	maxH := maxRows * cellH

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return img
	}
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}

	dst := imaging.Fit(img, maxW, maxH, imaging.CatmullRom)
	return imaging.Sharpen(dst, 0.4)
}

// CellGrid computes the cell footprint (cols, rows) for displaying an image
// of imgW x imgH pixels without exceeding maxCols x maxRows, preserving the
// source aspect ratio. An image that fits at native resolution gets exactly
// the cells it needs; a larger one is scaled to the tightest fitting grid.
func CellGrid(imgW, imgH, cellW, cellH, maxCols, maxRows int) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 {
		return 1, 1
	}
	if cellW <= 0 {
		cellW = defaultCellW
	}
	if cellH <= 0 {
		cellH = defaultCellH
	}
	if maxCols <= 0 {
		maxCols = 1
	}
	if maxRows <= 0 {
		maxRows = 1
	}

	cols = int(math.Ceil(float64(imgW) / float64(cellW)))
	rows = int(math.Ceil(float64(imgH) / float64(cellH)))
	if cols <= maxCols && rows <= maxRows {
		return cols, rows
	}

	aspect := float64(imgW) / float64(imgH)

	cols = maxCols
	rows = int(math.Round(float64(cols*cellW) / aspect / float64(cellH)))
	if rows > maxRows {
		rows = maxRows
		cols = int(math.Round(float64(rows*cellH) * aspect / float64(cellW)))
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

package utils

import (
	"bytes"
	"crypto/md5"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
)

const (
	identiconRows    = 5
	identiconColumns = 5
	identiconSize    = 36
	identiconPadding = 8
)

// IdenticonContentType is the media type of GenerateIdenticon's output
const IdenticonContentType = "image/png"

var identiconBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var identiconForeground = []color.RGBA{
	{R: 45, G: 79, B: 255, A: 255},
	{R: 254, G: 180, B: 44, A: 255},
	{R: 226, G: 121, B: 234, A: 255},
	{R: 30, G: 179, B: 253, A: 255},
	{R: 232, G: 77, B: 65, A: 255},
	{R: 49, G: 203, B: 115, A: 255},
	{R: 141, G: 69, B: 170, A: 255},
}

// GenerateIdenticon renders the default avatar for an email address as a PNG.
// The output depends only on the lower-cased email.
func GenerateIdenticon(email string) ([]byte, error) {
	digest := md5.Sum([]byte(strings.ToLower(email)))
	matrix := identiconMatrix(digest)
	fg := identiconForeground[int(digest[0])%len(identiconForeground)]

	side := identiconSize + 2*identiconPadding
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: identiconBackground}, image.Point{}, draw.Src)

	blockWidth := identiconSize / identiconColumns
	blockHeight := identiconSize / identiconRows
	for row := range matrix {
		for col, filled := range matrix[row] {
			if !filled {
				continue
			}
			block := image.Rect(
				identiconPadding+col*blockWidth,
				identiconPadding+row*blockHeight,
				identiconPadding+(col+1)*blockWidth,
				identiconPadding+(row+1)*blockHeight,
			)
			draw.Draw(img, block, &image.Uniform{C: fg}, image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// identiconMatrix fills the left half (plus middle column) of the grid from the
// digest bits after the first byte and mirrors it onto the right half
func identiconMatrix(digest [md5.Size]byte) [identiconRows][identiconColumns]bool {
	var matrix [identiconRows][identiconColumns]bool
	bits := digest[1:]
	cells := (identiconColumns/2 + identiconColumns%2) * identiconRows

	for cell := 0; cell < cells; cell++ {
		if bits[cell/8]>>(7-cell%8)&1 == 0 {
			continue
		}
		col := cell / identiconColumns
		row := cell % identiconRows
		matrix[row][col] = true
		matrix[row][identiconColumns-col-1] = true
	}
	return matrix
}

package utils

import (
	"bytes"
	"crypto/md5"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIdenticonIsDeterministic(t *testing.T) {
	first, err := GenerateIdenticon("alice@x.com")
	require.NoError(t, err)
	second, err := GenerateIdenticon("alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateIdenticonIgnoresCase(t *testing.T) {
	lower, err := GenerateIdenticon("alice@x.com")
	require.NoError(t, err)
	upper, err := GenerateIdenticon("ALICE@X.com")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)

	other, err := GenerateIdenticon("bob@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, lower, other)
}

func TestGenerateIdenticonImage(t *testing.T) {
	email := "alice@x.com"
	data, err := GenerateIdenticon(email)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 52, img.Bounds().Dx())
	assert.Equal(t, 52, img.Bounds().Dy())

	// Padding is always background
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	digest := md5.Sum([]byte(email))
	fg := identiconForeground[int(digest[0])%len(identiconForeground)]
	matrix := identiconMatrix(digest)
	for row := 0; row < identiconRows; row++ {
		for col := 0; col < identiconColumns; col++ {
			// Sample the centre of each block
			x := identiconPadding + col*7 + 3
			y := identiconPadding + row*7 + 3
			r, g, b, _ := img.At(x, y).RGBA()
			got := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			if matrix[row][col] {
				assert.Equal(t, [3]uint8{fg.R, fg.G, fg.B}, got, "row %d col %d", row, col)
			} else {
				assert.Equal(t, [3]uint8{255, 255, 255}, got, "row %d col %d", row, col)
			}
		}
	}
}

func TestIdenticonMatrixIsMirrored(t *testing.T) {
	for _, email := range []string{"a@x.com", "bob@example.org", "carol@h.org"} {
		matrix := identiconMatrix(md5.Sum([]byte(email)))
		for row := range matrix {
			for col := 0; col < identiconColumns; col++ {
				assert.Equal(t, matrix[row][col], matrix[row][identiconColumns-col-1])
			}
		}
	}
}

func TestIdenticonMatrixBitOrder(t *testing.T) {
	var digest [md5.Size]byte
	digest[1] = 0x80 // cell 0: column 0, row 0
	digest[2] = 0x01 // cell 15 is outside the 15 used cells
	matrix := identiconMatrix(digest)

	assert.True(t, matrix[0][0])
	assert.True(t, matrix[0][4])
	count := 0
	for row := range matrix {
		for col := range matrix[row] {
			if matrix[row][col] {
				count++
			}
		}
	}
	assert.Equal(t, 2, count)
}

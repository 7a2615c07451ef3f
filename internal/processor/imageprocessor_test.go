package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "card.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestPreprocessImageResizesAndGrayscales(t *testing.T) {
	path := writeTestImage(t, 400, 200)

	data, err := PreprocessImage(path, 100)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Longer edge bounded, aspect ratio kept.
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 50, img.Bounds().Dy())

	// Grayscale output: R == G == B everywhere.
	r, g, b, _ := img.At(20, 20).RGBA()
	require.Equal(t, r, g)
	require.Equal(t, g, b)
}

func TestPreprocessImageKeepsSmallImages(t *testing.T) {
	path := writeTestImage(t, 60, 40)

	data, err := PreprocessImage(path, 2000)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 60, img.Bounds().Dx())
	require.Equal(t, 40, img.Bounds().Dy())
}

func TestPreprocessImageMissingFile(t *testing.T) {
	_, err := PreprocessImage(filepath.Join(t.TempDir(), "nope.png"), 2000)
	require.Error(t, err)
}

package imaging

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// noisyImage produces an image that resists JPEG compression, so size-driven
// round behavior is actually exercised.
func noisyImage(w, h int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func writeJPEG(t *testing.T, img image.Image, quality int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, imaging.Save(img, path, imaging.JPEGQuality(quality)))
	return path
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func TestCompressor_SmallInputUnchanged(t *testing.T) {
	path := writeJPEG(t, noisyImage(64, 64), 50)
	require.LessOrEqual(t, fileSize(t, path), DefaultMaxBytes)

	compressor := NewCompressor(DefaultMaxBytes, testLogger())
	out := compressor.Compress(context.Background(), path)
	assert.Equal(t, path, out, "a photo already under budget must pass through untouched")
}

func TestCompressor_ShrinksLargeInput(t *testing.T) {
	path := writeJPEG(t, noisyImage(2000, 1500), 95)
	original := fileSize(t, path)
	require.Greater(t, original, DefaultMaxBytes)

	compressor := NewCompressor(DefaultMaxBytes, testLogger())
	out := compressor.Compress(context.Background(), path)

	require.NotEqual(t, path, out)
	assert.Less(t, fileSize(t, out), original, "output must be smaller than the input")
}

func TestCompressor_TerminatesOnTinyBudget(t *testing.T) {
	// A 1-byte budget can never be met; the loop must still stop after its
	// bounded rounds and hand back a usable file.
	path := writeJPEG(t, noisyImage(1600, 1200), 95)

	compressor := NewCompressor(1, testLogger())
	out := compressor.Compress(context.Background(), path)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCompressor_RemovesSupersededIntermediates(t *testing.T) {
	// A 1-byte budget forces every round to run; only the original photo and
	// the final output may remain on disk afterwards.
	path := writeJPEG(t, noisyImage(1600, 1200), 95)
	dir := filepath.Dir(path)

	compressor := NewCompressor(1, testLogger())
	out := compressor.Compress(context.Background(), path)
	require.NotEqual(t, path, out)

	intermediates, err := filepath.Glob(filepath.Join(dir, "compressed-*.jpg"))
	require.NoError(t, err)
	require.Len(t, intermediates, 1)
	assert.Equal(t, out, intermediates[0])

	_, err = os.Stat(path)
	assert.NoError(t, err, "the original photo is never removed")
}

func TestCompressor_UndecodableInputReturnsOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.jpg")
	big := make([]byte, DefaultMaxBytes+1)
	require.NoError(t, os.WriteFile(path, big, 0o600))

	compressor := NewCompressor(DefaultMaxBytes, testLogger())
	out := compressor.Compress(context.Background(), path)
	assert.Equal(t, path, out)
}

func TestCompressor_MissingFileReturnsPath(t *testing.T) {
	compressor := NewCompressor(DefaultMaxBytes, testLogger())
	out := compressor.Compress(context.Background(), "/nonexistent/photo.jpg")
	assert.Equal(t, "/nonexistent/photo.jpg", out)
}

func TestCompressor_CancelledContextKeepsLastOutput(t *testing.T) {
	path := writeJPEG(t, noisyImage(1600, 1200), 95)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	compressor := NewCompressor(1, testLogger())
	out := compressor.Compress(ctx, path)
	assert.Equal(t, path, out, "a cancelled context before the first round leaves the original")
}

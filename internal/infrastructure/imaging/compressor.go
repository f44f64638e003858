package imaging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

const (
	// DefaultMaxBytes is the upload size budget.
	DefaultMaxBytes int64 = 200 * 1024

	maxRounds       = 5
	startQuality    = 80
	qualityStep     = 15
	qualityFloor    = 10
	startDimension  = 1280
	dimensionFactor = 0.8
)

// CompressorImpl implements domain.ImageCompressor. It iteratively
// re-encodes the photo at decreasing JPEG quality and decreasing maximum
// dimension until it fits the byte budget. Each round compresses the
// previous round's output, which keeps the size monotonically non-increasing
// at the cost of cumulative quality loss.
type CompressorImpl struct {
	maxBytes int64
	log      *logrus.Logger
}

// NewCompressor creates a compressor with the given byte budget. A
// non-positive budget selects DefaultMaxBytes.
func NewCompressor(maxBytes int64, log *logrus.Logger) domain.ImageCompressor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &CompressorImpl{maxBytes: maxBytes, log: log}
}

// Compress implements domain.ImageCompressor. Compression is a best-effort
// optimization: on any failure the original path is returned and the upload
// proceeds with the uncompressed asset.
func (c *CompressorImpl) Compress(ctx context.Context, path string) string {
	info, err := os.Stat(path)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Warn("photo stat failed, skipping compression")
		return path
	}
	if info.Size() <= c.maxBytes {
		return path
	}

	current := path
	size := info.Size()
	quality := startQuality
	dimension := startDimension

	for round := 0; round < maxRounds && size > c.maxBytes; round++ {
		if err := ctx.Err(); err != nil {
			c.log.WithError(err).Warn("compression cancelled, using last output")
			break
		}

		out, err := c.compressRound(current, quality, dimension)
		if err != nil {
			c.log.WithError(err).WithField("round", round).Warn("compression round failed, using original photo")
			c.discard(current, path)
			return path
		}
		// The intermediate from the previous round is superseded now; only
		// the original and the newest output stay on disk.
		c.discard(current, path)
		current = out

		outInfo, err := os.Stat(out)
		if err != nil {
			c.log.WithError(err).Warn("compressed photo stat failed, using original photo")
			c.discard(out, path)
			return path
		}
		size = outInfo.Size()

		if quality == qualityFloor {
			break
		}
		quality -= qualityStep
		if quality < qualityFloor {
			quality = qualityFloor
		}
		dimension = int(float64(dimension) * dimensionFactor)
	}

	return current
}

// discard removes an intermediate output unless it is the original photo.
func (c *CompressorImpl) discard(intermediate, original string) {
	if intermediate != original {
		os.Remove(intermediate)
	}
}

// compressRound re-encodes src as a JPEG capped to dimension on the longest
// side, written to a sibling temp file.
func (c *CompressorImpl) compressRound(src string, quality, dimension int) (string, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > dimension || bounds.Dy() > dimension {
		img = imaging.Fit(img, dimension, dimension, imaging.Lanczos)
	}

	out, err := os.CreateTemp(filepath.Dir(src), "compressed-*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	name := out.Name()
	out.Close()

	if err := imaging.Save(img, name, imaging.JPEGQuality(quality)); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}
	return name, nil
}

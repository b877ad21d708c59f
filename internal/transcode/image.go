package transcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// DefaultMaxImageDimension bounds the longest edge of uploaded images.
const DefaultMaxImageDimension = 2048

var (
	ErrEmptyImage = errors.New("image is empty")
	ErrNotAnImage = errors.New("file is not an image")
)

// ImageEncoder prepares uploaded CV images for the model and for inline display.
type ImageEncoder struct {
	maxDimension int
}

func NewImageEncoder(maxDimension int) *ImageEncoder {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxImageDimension
	}
	return &ImageEncoder{maxDimension: maxDimension}
}

// Encode validates doc, shrinks it when it is larger than the configured
// bound and returns the payload plus a data URL of the same bytes.
// Images in formats we cannot decode are passed through untouched.
func (e *ImageEncoder) Encode(doc domain.Document) (domain.Blob, string, error) {
	if len(doc.Data) == 0 {
		return domain.Blob{}, "", ErrEmptyImage
	}

	mimeType := baseMIMEType(doc.MIMEType, "")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = baseMIMEType(http.DetectContentType(doc.Data), "")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.Blob{}, "", fmt.Errorf("%w: %s", ErrNotAnImage, mimeType)
	}

	data := doc.Data
	if format, ok := formats[mimeType]; ok {
		resized, err := e.downscale(data, format)
		if err != nil {
			return domain.Blob{}, "", fmt.Errorf("resize %s: %w", doc.FileName, err)
		}
		data = resized
	}

	blob := domain.Blob{Data: data, MIMEType: mimeType}
	return blob, DataURL(blob), nil
}

var formats = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
	"image/bmp":  imaging.BMP,
	"image/tiff": imaging.TIFF,
}

func (e *ImageEncoder) downscale(data []byte, format imaging.Format) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= e.maxDimension && cfg.Height <= e.maxDimension {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, e.maxDimension, e.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL renders blob as a base64 data URL.
func DataURL(blob domain.Blob) string {
	return "data:" + blob.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(blob.Data)
}

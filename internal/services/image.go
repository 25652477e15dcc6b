package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"tickets-go-admin/internal/forms"
	"tickets-go-admin/internal/gateway"
)

var (
	ErrImageTooLarge    = errors.New("image is too large")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// ImageOptions bounds the images sent to the API
type ImageOptions struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// ImagePreparer checks chosen images and shrinks them to fit before upload
type ImagePreparer struct {
	opts ImageOptions
}

// NewImagePreparer creates a new image preparer
func NewImagePreparer(opts ImageOptions) *ImagePreparer {
	if opts.Quality == 0 {
		opts.Quality = 85
	}
	return &ImagePreparer{opts: opts}
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
}

// Prepare decodes file, fits it inside the maximum dimensions and encodes
// it again in its own format. Images already small enough keep their bytes.
func (p *ImagePreparer) Prepare(file *forms.ImageFile) (gateway.Upload, error) {
	if p.opts.MaxBytes > 0 && int64(len(file.Data)) > p.opts.MaxBytes {
		return gateway.Upload{}, fmt.Errorf("%s: %w", file.Filename, ErrImageTooLarge)
	}

	format, err := imaging.FormatFromFilename(file.Filename)
	if err != nil {
		return gateway.Upload{}, fmt.Errorf("%s: %w", file.Filename, ErrUnsupportedImage)
	}
	contentType, ok := contentTypes[format]
	if !ok {
		return gateway.Upload{}, fmt.Errorf("%s: %w", file.Filename, ErrUnsupportedImage)
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return gateway.Upload{}, fmt.Errorf("%s: failed to decode image: %w", file.Filename, ErrUnsupportedImage)
	}

	bounds := img.Bounds()
	if (p.opts.MaxWidth == 0 || bounds.Dx() <= p.opts.MaxWidth) &&
		(p.opts.MaxHeight == 0 || bounds.Dy() <= p.opts.MaxHeight) {
		return gateway.Upload{Filename: file.Filename, ContentType: contentType, Data: file.Data}, nil
	}

	maxW, maxH := p.opts.MaxWidth, p.opts.MaxHeight
	if maxW == 0 {
		maxW = bounds.Dx()
	}
	if maxH == 0 {
		maxH = bounds.Dy()
	}
	resized := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(p.opts.Quality)); err != nil {
		return gateway.Upload{}, fmt.Errorf("%s: failed to encode image: %w", file.Filename, err)
	}
	return gateway.Upload{Filename: file.Filename, ContentType: contentType, Data: buf.Bytes()}, nil
}

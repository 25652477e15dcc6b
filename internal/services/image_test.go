package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickets-go-admin/internal/forms"
)

// Helper function to create a test JPEG image
func createTestJPEG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	return buf.Bytes()
}

// Helper function to create a test PNG image
func createTestPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestImagePreparerKeepsSmallImages(t *testing.T) {
	p := NewImagePreparer(ImageOptions{MaxBytes: 1 << 20, MaxWidth: 800, MaxHeight: 600})
	data := createTestPNG(100, 50)

	up, err := p.Prepare(&forms.ImageFile{Filename: "intro.png", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "intro.png", up.Filename)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, data, up.Data)
}

func TestImagePreparerFitsLargeImages(t *testing.T) {
	p := NewImagePreparer(ImageOptions{MaxWidth: 400, MaxHeight: 300})

	up, err := p.Prepare(&forms.ImageFile{Filename: "banner.JPG", Data: createTestJPEG(1600, 600)})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", up.ContentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(up.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 150, cfg.Height)
}

func TestImagePreparerRejects(t *testing.T) {
	p := NewImagePreparer(ImageOptions{MaxBytes: 64, MaxWidth: 400, MaxHeight: 300})

	_, err := p.Prepare(&forms.ImageFile{Filename: "big.png", Data: createTestPNG(200, 200)})
	assert.ErrorIs(t, err, ErrImageTooLarge)

	p = NewImagePreparer(ImageOptions{MaxWidth: 400, MaxHeight: 300})

	_, err = p.Prepare(&forms.ImageFile{Filename: "notes.txt", Data: []byte("hello")})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = p.Prepare(&forms.ImageFile{Filename: "fake.png", Data: []byte("not an image")})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 1, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.Total)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(items, 3, 10)
	assert.Equal(t, []int{20, 21, 22}, p.Items)
	assert.False(t, p.HasNext())

	p = Paginate(items, 9, 10)
	assert.Equal(t, 3, p.Page)

	p = Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	empty := Paginate([]int{}, 1, 10)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 1, empty.TotalPages)
}

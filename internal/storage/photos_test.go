package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/pkg/apierror"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoStoreSaveAndThumbnail(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1<<20, 64)
	require.NoError(t, err)

	photo, err := store.Save("e-1", "face.png", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", photo.ContentType)
	assert.Equal(t, 400, photo.Width)

	f, info, err := store.OpenThumbnail("e-1")
	require.NoError(t, err)
	defer f.Close()
	assert.Positive(t, info.Size())

	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestPhotoStoreRejects(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1024, 64)
	require.NoError(t, err)

	t.Run("wrong extension", func(t *testing.T) {
		_, err := store.Save("e-1", "cv.pdf", strings.NewReader("%PDF"))
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "UNSUPPORTED_TYPE", apiErr.Code)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := store.Save("e-1", "face.png", strings.NewReader("plain text"))
		require.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := store.Save("e-1", "face.png", io.LimitReader(zeroReader{}, 4096))
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 413, apiErr.HTTPStatus)
	})

	t.Run("traversal in employee id", func(t *testing.T) {
		_, err := store.Save("../../etc", "face.png", bytes.NewReader(pngBytes(t, 4, 4)))
		require.Error(t, err)
	})
}

func TestPhotoStoreMissingAndRemove(t *testing.T) {
	store, err := NewPhotoStore(t.TempDir(), 1<<20, 64)
	require.NoError(t, err)

	_, _, err = store.OpenThumbnail("ghost")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.HTTPStatus)

	_, err = store.Save("e-2", "face.png", bytes.NewReader(pngBytes(t, 8, 8)))
	require.NoError(t, err)
	require.NoError(t, store.Remove("e-2"))
	_, statErr := os.Stat(store.RootAbs() + "/employees/e-2")
	assert.True(t, os.IsNotExist(statErr))
	require.NoError(t, store.Remove("e-2"))
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

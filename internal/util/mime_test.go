package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPhotoExtension(t *testing.T) {
	t.Parallel()

	require.True(t, IsPhotoExtension("face.jpg"))
	require.True(t, IsPhotoExtension("face.JFIF"))
	require.True(t, IsPhotoExtension(" badge.webp "))
	require.False(t, IsPhotoExtension("resume.pdf"))
	require.False(t, IsPhotoExtension("noext"))
}

func TestIsPhotoMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsPhotoMIME("image/png"))
	require.True(t, IsPhotoMIME(" IMAGE/JPEG "))
	require.False(t, IsPhotoMIME("image/svg+xml"))
	require.False(t, IsPhotoMIME("application/pdf"))
}

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.Equal(t, "image/png", DetectMIME(png))
	require.Equal(t, "text/plain; charset=utf-8", DetectMIME([]byte("hello")))
}

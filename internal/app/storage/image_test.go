package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectImage(t *testing.T) {
	img, err := DetectImage(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Extension)

	img, err = DetectImage([]byte("GIF89a\x01\x00\x01\x00"))
	require.NoError(t, err)
	assert.Equal(t, ".gif", img.Extension)
}

func TestDetectImage_Rejects(t *testing.T) {
	_, err := DetectImage([]byte("%PDF-1.7\n"))
	assert.True(t, errors.Is(err, ErrNotAnImage))

	_, err = DetectImage([]byte("<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"))
	assert.True(t, errors.Is(err, ErrNotAnImage))

	big := append(bytes.Clone(pngHeader), make([]byte, MaxImageSize)...)
	_, err = DetectImage(big)
	assert.True(t, errors.Is(err, ErrImageTooLarge))
}

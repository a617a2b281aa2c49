package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://qr.example.com/s/abc", TrackingURL("https://qr.example.com", "abc"))
	assert.Equal(t, "https://qr.example.com/s/abc", TrackingURL("https://qr.example.com/", "abc"))
}

func TestPNGRendersAtRequestedSize(t *testing.T) {
	data, err := PNG("https://qr.example.com/s/abc", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestPNGClampsSize(t *testing.T) {
	data, err := PNG("https://qr.example.com/s/abc", 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())

	data, err = PNG("https://qr.example.com/s/abc", 9999)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxSize, img.Bounds().Dx())
}

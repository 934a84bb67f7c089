package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURI(t *testing.T) {
	uri := "otpauth://totp/2FA%20-%20Service:alice?secret=JBSWY3DPEHPK3PXP&issuer=2FA%20-%20Service"

	got, err := DataURI(uri, 200)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, dataURIPrefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, dataURIPrefix))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	again, err := DataURI(uri, 200)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestDataURI_DefaultSize(t *testing.T) {
	got, err := DataURI("hello", 0)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, dataURIPrefix))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, defaultSize, img.Bounds().Dx())
}

func TestDataURI_Empty(t *testing.T) {
	_, err := DataURI("", 100)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

// Package qrcode renders text payloads (such as otpauth:// URIs) as PNG QR
// images encoded in data URIs that browsers can display directly.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	dataURIPrefix = "data:image/png;base64,"
	defaultSize   = 256
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qrcode: content is empty")

// DataURI encodes content into a size x size PNG QR code and returns it as a
// base64 data URI.
func DataURI(content string, size int) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", err
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

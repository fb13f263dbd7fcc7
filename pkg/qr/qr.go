// Package qr renders QR codes for coupon redemption links.
package qr

import (
	"encoding/base64"
	"errors"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generate renders the given content as a PNG QR code. Size is the image
// edge in pixels; values below 64 fall back to the default.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size < 64 {
		size = defaultSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

// GenerateDataURL renders content as a base64 data URL suitable for
// embedding directly in JSON responses.
func GenerateDataURL(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

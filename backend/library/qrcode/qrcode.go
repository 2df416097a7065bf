// Package qrcode renders download URLs as QR codes.
package qrcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

// Scale is the number of image pixels per QR module in generated PNGs.
const Scale = 8

// Generate returns a PNG of url encoded at error correction level M.
func Generate(url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("empty url")
	}
	code, err := qr.Encode(url, qr.M)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	code.Scale = Scale
	return code.PNG(), nil
}

// PrintTerminal writes url to w as a half-block QR code.
func PrintTerminal(w io.Writer, url string) {
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:          qrterminal.M,
		Writer:         w,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		QuietZone:      1,
	})
}

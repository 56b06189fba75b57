package qrcode

import (
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 200

// Palette picks the QR foreground per page style.
var (
	ColorWedding = color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
	ColorFuneral = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	ColorDefault = color.RGBA{A: 0xff}
)

// QRService renders share links as QR codes.
type QRService struct {
	level qrcode.RecoveryLevel
}

func NewQRService() *QRService {
	return &QRService{level: qrcode.Medium}
}

// GenerateQRCode encodes content as a PNG with the given foreground colour.
func (s *QRService) GenerateQRCode(content string, size int, fg color.Color) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	q, err := qrcode.New(content, s.level)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = color.White

	png, err := q.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}

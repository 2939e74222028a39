// Package qrcode renders order receipts as QR codes.
package qrcode

import (
	"strings"

	"coursemart/config"
	"coursemart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	orderReferencePrefix = "coursemart:order:"
	defaultSize          = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// New builds the service from cfg.QRCode, falling back to 256px at medium recovery.
func New(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// NewQRCodeService renders size-pixel codes at the named recovery level.
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultSize
	}

	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateOrderReceiptQR encodes "coursemart:order:<id>" as a PNG.
func (s *qrcodeService) GenerateOrderReceiptQR(orderID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(orderReferencePrefix+orderID.String(), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func (s *qrcodeService) ParseOrderReference(payload string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(payload), orderReferencePrefix)
	if !ok {
		return uuid.Nil, errors.Errorf("not an order reference: %q", payload)
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse order ID")
	}

	return orderID, nil
}

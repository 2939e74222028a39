package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders and reads order receipt QR codes.
type QRCodeService interface {
	// GenerateOrderReceiptQR returns a PNG encoding the order reference.
	GenerateOrderReceiptQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderReference extracts the order id from a scanned payload.
	ParseOrderReference(payload string) (uuid.UUID, error)
}

// Package service defines interfaces for core, stateless domain logic.
package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateProductQR generates a QR code encoding a product share payload
	GenerateProductQR(productID string) ([]byte, error)

	// ParseProductQR parses QR code data and returns the product ID
	ParseProductQR(qrData string) (string, error)
}

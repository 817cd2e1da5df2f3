package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders the pickup code shown after a confirmed checkout.
type QRGenerator interface {
	Generate(invoiceNumber string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(invoiceNumber string) ([]byte, error) {
	if invoiceNumber == "" {
		return nil, fmt.Errorf("invoice number is empty")
	}
	qrData := fmt.Sprintf("%s/pickup?invoice=%s", g.BaseURL, invoiceNumber)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

package export

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

var _ quality.LabelGenerator = QRLabels{}

// QRLabels etiquetas PNG con el número de orden codificado.
type QRLabels struct{}

// OrderLabel PNG cuadrado de size píxeles.
func (QRLabels) OrderLabel(orderNumber string, size int) ([]byte, error) {
	png, err := qrcode.Encode(orderNumber, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	return png, nil
}

package store

import (
	"fmt"
	"math/rand/v2"

	"gorm.io/gorm"

	"milling-shop-backend/internal/model"
)

const barcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomSuffix() string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = barcodeAlphabet[rand.IntN(len(barcodeAlphabet))]
	}
	return string(b)
}

// FormatBarcode joins the zero-padded thickness and a random suffix.
func FormatBarcode(thickness int, suffix string) string {
	return fmt.Sprintf("%02d%s", thickness, suffix)
}

// nextBarcode draws barcodes until one is unused by any live block.
// History is not consulted.
func (s *gormStore) nextBarcode(tx *gorm.DB, thickness int) (string, error) {
	for {
		code := FormatBarcode(thickness, s.suffix())
		var taken int64
		if err := tx.Model(&model.Block{}).Where("barcode = ?", code).Count(&taken).Error; err != nil {
			return "", fmt.Errorf("failed to check barcode %q: %w", code, err)
		}
		if taken == 0 {
			return code, nil
		}
	}
}

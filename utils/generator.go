package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/skilllink/skilllink/models"
	"gorm.io/gorm"
)

const orderNumberRandomDigits = 6

// GenerateUniqueOrderNumber builds an order number of the form
// SK + YYYYMMDDHHMMSS + 6 random digits, e.g. SK20240115143022837451,
// and retries until the number is not already taken.
func GenerateUniqueOrderNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		timestamp := time.Now().Format("20060102150405")
		digits := make([]byte, orderNumberRandomDigits)
		for i := range digits {
			digits[i] = byte('0' + seededRand.Intn(10))
		}
		number := fmt.Sprintf("SK%s%s", timestamp, digits)

		var order models.Order
		err := tx.Where("order_number = ?", number).First(&order).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}

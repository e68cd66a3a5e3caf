package service

import (
	"strings"

	"github.com/google/uuid"
)

// newPIN генерирует короткий уникальный код для авансов и счетов
func newPIN() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

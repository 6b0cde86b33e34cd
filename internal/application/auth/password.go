package auth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
)

const minPasswordLength = 8

const specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?/~"

// ValidatePasswordComplexity verifica los requisitos de complejidad de la
// contraseña: longitud mínima, mayúscula, minúscula, dígito y carácter
// especial. Devuelve un error envuelto en ErrInvalidInput con el requisito
// incumplido.
func ValidatePasswordComplexity(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(specialChars, c):
			hasSpecial = true
		}
	}
	switch {
	case !hasUpper:
		return fmt.Errorf("%w: la contraseña debe incluir al menos una mayúscula", domain.ErrInvalidInput)
	case !hasLower:
		return fmt.Errorf("%w: la contraseña debe incluir al menos una minúscula", domain.ErrInvalidInput)
	case !hasDigit:
		return fmt.Errorf("%w: la contraseña debe incluir al menos un dígito", domain.ErrInvalidInput)
	case !hasSpecial:
		return fmt.Errorf("%w: la contraseña debe incluir al menos un carácter especial", domain.ErrInvalidInput)
	}
	return nil
}

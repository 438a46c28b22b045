package issue_checkin_token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tokenLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tokenDigits  = "0123456789"
)

// generateToken генерирует код токена: 3 заглавные буквы + 3 цифры.
// Пространство кодов - 26^3 * 10^3, коллизии разрешаются повтором генерации
func generateToken() (string, error) {
	buf := make([]byte, 6)

	for i := 0; i < 3; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenLetters))))
		if err != nil {
			return "", fmt.Errorf("random letter: %w", err)
		}
		buf[i] = tokenLetters[n.Int64()]
	}

	for i := 3; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenDigits))))
		if err != nil {
			return "", fmt.Errorf("random digit: %w", err)
		}
		buf[i] = tokenDigits[n.Int64()]
	}

	return string(buf), nil
}

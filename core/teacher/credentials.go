package teacher

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordLength = 12

	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"
	allChars     = upperChars + lowerChars + digitChars + specialChars
)

// formatTeacherID renders the sequential public teacher id, e.g. TCH007.
func formatTeacherID(seq int) string {
	return fmt.Sprintf("TCH%03d", seq)
}

// generatePassword returns a random password guaranteed to contain at
// least one uppercase letter, one lowercase letter, one digit and one
// special character.
func generatePassword() (string, error) {
	pwd := make([]byte, 0, passwordLength)

	for _, set := range []string{upperChars, lowerChars, digitChars, specialChars} {
		c, err := randChar(set)
		if err != nil {
			return "", err
		}
		pwd = append(pwd, c)
	}
	for len(pwd) < passwordLength {
		c, err := randChar(allChars)
		if err != nil {
			return "", err
		}
		pwd = append(pwd, c)
	}

	// shuffle so the guaranteed classes are not positional
	for i := len(pwd) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := n.Int64()
		pwd[i], pwd[j] = pwd[j], pwd[i]
	}
	return string(pwd), nil
}

func randChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

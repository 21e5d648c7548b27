package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character classes for generated temporary passwords. Visually similar
// characters (i, l, 1, L, o, 0, O) and the double quote are excluded so the
// password survives being read aloud or pasted into shell quoting.
const (
	genLower   = "abcdefghjkmnpqrstuvwxyz"
	genUpper   = "ABCDEFGHJKMNPQRSTUVWXYZ"
	genDigits  = "23456789"
	genSymbols = "!@#$%^&*()+_-=}{[]|:;/?.><,"

	tempPasswordLength = 10
)

// GenerateTemporary returns a fresh random temporary password containing at
// least one character from each class. The plaintext is disclosed exactly
// once in the rotation response and only its bcrypt hash is ever stored.
func GenerateTemporary() (string, error) {
	classes := []string{genLower, genUpper, genDigits, genSymbols}
	all := genLower + genUpper + genDigits + genSymbols

	buf := make([]byte, tempPasswordLength)

	// One guaranteed pick per class, the rest from the full alphabet.
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	for i := len(classes); i < tempPasswordLength; i++ {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}

	// Fisher-Yates shuffle so the class-guaranteed characters are not
	// always in the leading positions.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := randomInt(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("generate random index: %w", err)
	}
	return int(v.Int64()), nil
}

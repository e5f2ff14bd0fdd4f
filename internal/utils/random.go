package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	symbols = "!@#$%^&*"

	passwordAlphabet = upper + lower + digits + symbols
)

// TemporaryPassword returns a random password of the given length drawn from
// letters, digits and symbols. The first four characters are one of each
// class so the result satisfies a strict user pool password policy; the
// whole result is then shuffled.
func TemporaryPassword(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("temporary password length %d too short", length)
	}

	out := make([]byte, 0, length)
	for _, class := range []string{upper, lower, digits, symbols} {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := pick(passwordAlphabet)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}

	return string(out), nil
}

func pick(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("utils: failed to read random: %w", err)
	}
	return alphabet[n.Int64()], nil
}

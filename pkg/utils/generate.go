package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/gosimple/slug"
)

// ==================== CONFIRMATION CODE ====================

// excludes 0/O/1/I
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const ConfirmationCodeLength = 10

func GenerateConfirmationCode() (string, error) {
	buf := make([]byte, ConfirmationCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate confirmation code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// ==================== SLUG ====================

func Slugify(title string) string {
	return slug.Make(title)
}

// SlugCandidate returns base for attempt 0 and base-N afterwards.
func SlugCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt+1)
}

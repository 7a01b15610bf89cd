package qrcode

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	codePrefix      = "GYM"
	randomSuffixLen = 4
	base36Alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var codePattern = regexp.MustCompile(`^GYM-[A-Z0-9]+-[A-Z0-9]{4}$`)

// GenerateCode produces an opaque scan code of the form
// GYM-{base36 ms timestamp}-{4 random base36 chars}, uppercase.
// Uniqueness is enforced by the database; creation retries on collision.
func GenerateCode() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return codePrefix + "-" + ts + "-" + randomSuffix(randomSuffixLen)
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand should not fail; degrade to a fixed char
			// rather than panic in the request path.
			b[i] = '0'
			continue
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b)
}

func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// 6-digit code space, both bounds inclusive.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random 6-digit numeric code in
// [100000, 999999]. rand.Int is already uniform over the range, so no
// rejection loop is needed.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", otpMin+n.Int64()), nil
}

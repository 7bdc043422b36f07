package coupon

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"canteen/internal/model"

	"github.com/rs/zerolog"
)

const (
	// CodePrefix starts every short code so it can never be mistaken for a numeric OTP.
	CodePrefix = "C"
	// CodeLength is the number of random characters after the prefix.
	CodeLength = 8
	// OTPDigits is the length of an OTP.
	OTPDigits = 6

	// crockford is the Crockford base-32 alphabet: no I, L, O or U to misread over the phone.
	crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

var otpSpace = big.NewInt(1_000_000)

// randomGenerator draws codes and OTPs independently from a random source.
type randomGenerator struct {
	random      io.Reader
	maxAttempts int
	logger      zerolog.Logger
}

// NewGenerator creates a Generator backed by crypto/rand.
func NewGenerator(maxAttempts int, logger zerolog.Logger) Generator {
	return NewGeneratorWithSource(rand.Reader, maxAttempts, logger)
}

// NewGeneratorWithSource creates a Generator reading randomness from random.
func NewGeneratorWithSource(random io.Reader, maxAttempts int, logger zerolog.Logger) Generator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &randomGenerator{
		random:      random,
		maxAttempts: maxAttempts,
		logger:      logger.With().Str("component", "code-generator").Logger(),
	}
}

// NextCode returns "C" followed by CodeLength Crockford base-32 characters.
func (g *randomGenerator) NextCode(existing CodeSet) (string, error) {
	return g.next(existing, "code", g.drawCode)
}

// NextOTP returns a zero-padded number drawn uniformly from 000000-999999.
func (g *randomGenerator) NextOTP(existing CodeSet) (string, error) {
	return g.next(existing, "otp", g.drawOTP)
}

func (g *randomGenerator) next(existing CodeSet, kind string, draw func() (string, error)) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := draw()
		if err != nil {
			return "", fmt.Errorf("failed to draw %s: %w", kind, err)
		}
		if existing == nil || !existing.Contains(candidate) {
			return candidate, nil
		}
		g.logger.Debug().Str("kind", kind).Int("attempt", attempt).Msg("generated value already in use")
	}

	g.logger.Warn().Str("kind", kind).Int("attempts", g.maxAttempts).Msg("generation exhausted")
	return "", model.ErrGenerationExhausted
}

func (g *randomGenerator) drawCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, len(CodePrefix)+CodeLength)
	out = append(out, CodePrefix...)
	for _, b := range buf {
		// 256 is a multiple of 32, so masking keeps the draw uniform.
		out = append(out, crockford[b&31])
	}
	return string(out), nil
}

func (g *randomGenerator) drawOTP() (string, error) {
	n, err := rand.Int(g.random, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPDigits, n.Int64()), nil
}

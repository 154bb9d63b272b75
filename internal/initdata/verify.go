// Package initdata verifies the signed launch parameters Telegram hands to a
// Mini App ("init data").
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const secretLabel = "WebAppData"

var (
	ErrAuthenticationFailed = errors.New("init data authentication failed")
	ErrSignatureMismatch    = errors.New("init data signature mismatch")
	ErrExpired              = errors.New("init data expired")
)

// SecretKey derives the verification secret from the bot token.
func SecretKey(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte(secretLabel))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// Sign returns the lowercase hex signature of the payload's data check string.
func Sign(p *Payload, botToken string) string {
	mac := hmac.New(sha256.New, SecretKey(botToken))
	mac.Write([]byte(p.DataCheckString()))
	return hex.EncodeToString(mac.Sum(nil))
}

// Validate parses raw and checks its signature against botToken. Every failure
// wraps ErrAuthenticationFailed.
func Validate(raw, botToken string) (*Payload, error) {
	payload, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	expected := Sign(payload, botToken)
	if !hmac.Equal([]byte(expected), []byte(payload.Hash)) {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, ErrSignatureMismatch)
	}

	return payload, nil
}

// Verify reports whether raw carries a valid signature for botToken.
func Verify(raw, botToken string) bool {
	_, err := Validate(raw, botToken)
	return err == nil
}

// Verifier binds the bot token and freshness policy used at the API boundary.
// With an empty token it runs in bypass mode and accepts everything.
type Verifier struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
	log      logrus.FieldLogger
}

type Option func(*Verifier)

// WithMaxAge rejects payloads whose auth_date is older than d. Zero disables
// the check.
func WithMaxAge(d time.Duration) Option {
	return func(v *Verifier) { v.maxAge = d }
}

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

func NewVerifier(botToken string, log logrus.FieldLogger, opts ...Option) *Verifier {
	v := &Verifier{
		botToken: botToken,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.Bypass() {
		v.log.Warn("⚠️ TELEGRAM_BOT_TOKEN is not set: init data authentication is DISABLED")
	}

	return v
}

func (v *Verifier) Bypass() bool {
	return v.botToken == ""
}

// Verify authenticates raw init data. In bypass mode it returns whatever could
// be parsed (possibly nil) and never fails.
func (v *Verifier) Verify(raw string) (*Payload, error) {
	if v.Bypass() {
		v.log.Warn("⚠️ init data accepted without verification (bypass mode)")
		payload, err := Parse(raw)
		if err != nil {
			return nil, nil
		}
		return payload, nil
	}

	payload, err := Validate(raw, v.botToken)
	if err != nil {
		return nil, err
	}

	if v.maxAge > 0 {
		issued, err := payload.AuthDate()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}
		if issued.IsZero() || v.now().Sub(issued) > v.maxAge {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, ErrExpired)
		}
	}

	return payload, nil
}

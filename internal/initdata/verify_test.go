package initdata

import (
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// signed builds a wire payload from pairs in the given order and appends a
// valid hash for token.
func signed(t *testing.T, token string, pairs ...Pair) string {
	t.Helper()

	p := &Payload{Pairs: pairs}
	parts := make([]string, 0, len(pairs)+1)
	for _, pair := range pairs {
		parts = append(parts, url.QueryEscape(pair.Key)+"="+url.QueryEscape(pair.Value))
	}
	parts = append(parts, "hash="+Sign(p, token))
	return strings.Join(parts, "&")
}

func samplePairs() []Pair {
	return []Pair{
		{Key: "query_id", Value: "AAHdF6IQAAAAAN0XohDhrOrc"},
		{Key: "user", Value: `{"id":279058397,"first_name":"Vlad","username":"vdkfrost","language_code":"ru"}`},
		{Key: "auth_date", Value: "1662771648"},
	}
}

func TestVerifyValidPayload(t *testing.T) {
	raw := signed(t, testToken, samplePairs()...)
	assert.True(t, Verify(raw, testToken))
}

func TestVerifyWrongToken(t *testing.T) {
	raw := signed(t, testToken, samplePairs()...)
	assert.False(t, Verify(raw, "654321:other"))
}

func TestVerifyIsOrderIndependent(t *testing.T) {
	pairs := samplePairs()
	raw := signed(t, testToken, pairs...)

	payload, err := Parse(raw)
	require.NoError(t, err)

	permuted := []Pair{pairs[2], pairs[0], pairs[1]}
	parts := make([]string, 0, 4)
	parts = append(parts, "hash="+payload.Hash)
	for _, pair := range permuted {
		parts = append(parts, url.QueryEscape(pair.Key)+"="+url.QueryEscape(pair.Value))
	}

	assert.True(t, Verify(strings.Join(parts, "&"), testToken))
}

func TestVerifyRejectsAnySingleCharacterFlip(t *testing.T) {
	raw := signed(t, testToken, samplePairs()...)

	for i := range raw {
		if raw[i] == '&' || raw[i] == '=' || raw[i] == '%' {
			continue
		}
		// 'z' is never a hex digit, so a flip inside a percent escape cannot
		// decode to the same byte.
		flipped := []byte(raw)
		if flipped[i] == 'z' {
			flipped[i] = 'y'
		} else {
			flipped[i] = 'z'
		}
		assert.False(t, Verify(string(flipped), testToken), "flip at %d accepted: %s", i, flipped)
	}
}

func TestVerifyRejectsUppercaseHash(t *testing.T) {
	raw := signed(t, testToken, samplePairs()...)
	idx := strings.Index(raw, "hash=")
	upper := raw[:idx] + "hash=" + strings.ToUpper(raw[idx+5:])

	assert.False(t, Verify(upper, testToken))
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"no pairs", "garbage", ErrMalformed},
		{"missing hash", "auth_date=1&user=x", ErrMissingHash},
		{"empty hash", "auth_date=1&hash=", ErrMissingHash},
		{"bad escape", "auth_date=%zz&hash=00", ErrMalformed},
		{"duplicate key", "a=1&a=2&hash=00", ErrMalformed},
		{"mismatch", "auth_date=1&hash=00", ErrSignatureMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.raw, testToken)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDataCheckStringDecodesValues(t *testing.T) {
	payload, err := Parse("user=%7B%22id%22%3A1%7D&auth_date=5&hash=ff")
	require.NoError(t, err)

	assert.Equal(t, "auth_date=5\nuser={\"id\":1}", payload.DataCheckString())
	assert.Equal(t, "ff", payload.Hash)
}

func TestPayloadUser(t *testing.T) {
	payload, err := Parse(signed(t, testToken, samplePairs()...))
	require.NoError(t, err)

	user, ok, err := payload.User()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(279058397), user.ID)
	assert.Equal(t, "vdkfrost", user.Username)
}

func TestVerifierBypass(t *testing.T) {
	v := NewVerifier("", quietLogger())
	require.True(t, v.Bypass())

	payload, err := v.Verify("anything at all")
	assert.NoError(t, err)
	assert.Nil(t, payload)

	payload, err = v.Verify("auth_date=1&hash=00")
	assert.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "1", payload.Get("auth_date"))
}

func TestVerifierBypassWarnsOnEveryUse(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	v := NewVerifier("", log)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	for i := 1; i <= 3; i++ {
		_, _ = v.Verify("auth_date=1&hash=00")
		require.Len(t, hook.AllEntries(), 1+i)
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	}

	hook.Reset()
	_, err := NewVerifier(testToken, log).Verify(signed(t, testToken, samplePairs()...))
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestVerifierRejectsInvalid(t *testing.T) {
	v := NewVerifier(testToken, quietLogger())

	_, err := v.Verify("auth_date=1&hash=00")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestVerifierMaxAge(t *testing.T) {
	issued := time.Unix(1662771648, 0)
	raw := signed(t, testToken, samplePairs()...)

	fresh := NewVerifier(testToken, quietLogger(),
		WithMaxAge(time.Hour),
		WithClock(func() time.Time { return issued.Add(30 * time.Minute) }),
	)
	_, err := fresh.Verify(raw)
	assert.NoError(t, err)

	stale := NewVerifier(testToken, quietLogger(),
		WithMaxAge(time.Hour),
		WithClock(func() time.Time { return issued.Add(2 * time.Hour) }),
	)
	_, err = stale.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

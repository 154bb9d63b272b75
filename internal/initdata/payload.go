package initdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const hashKey = "hash"

var (
	ErrMalformed   = errors.New("init data malformed")
	ErrMissingHash = errors.New("init data is missing hash")
)

type Pair struct {
	Key   string
	Value string
}

// Payload is a parsed init data string. Pairs keep the order they arrived in;
// values are already percent-decoded.
type Payload struct {
	Pairs []Pair
	Hash  string
}

// User is the subset of the "user" claim the backend relies on.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	Language  string `json:"language_code,omitempty"`
}

// Parse splits raw init data into its signed pairs and the claimed hash.
func Parse(raw string) (*Payload, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	payload := &Payload{}
	seen := make(map[string]struct{})
	hasHash := false

	for _, part := range strings.Split(raw, "&") {
		k, v, ok := strings.Cut(part, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: pair %q has no key=value form", ErrMalformed, part)
		}

		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrMalformed, key)
		}
		seen[key] = struct{}{}

		if key == hashKey {
			payload.Hash = value
			hasHash = true
			continue
		}
		payload.Pairs = append(payload.Pairs, Pair{Key: key, Value: value})
	}

	if !hasHash || payload.Hash == "" {
		return nil, ErrMissingHash
	}

	return payload, nil
}

// Get returns the decoded value for key, or "" when absent.
func (p *Payload) Get(key string) string {
	for _, pair := range p.Pairs {
		if pair.Key == key {
			return pair.Value
		}
	}
	return ""
}

// DataCheckString is the canonical signed body: pairs sorted by key and
// joined as key=value lines.
func (p *Payload) DataCheckString() string {
	pairs := make([]Pair, len(p.Pairs))
	copy(pairs, p.Pairs)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })

	lines := make([]string, len(pairs))
	for i, pair := range pairs {
		lines[i] = pair.Key + "=" + pair.Value
	}
	return strings.Join(lines, "\n")
}

// User decodes the "user" claim. ok is false when the claim is absent.
func (p *Payload) User() (user User, ok bool, err error) {
	raw := p.Get("user")
	if raw == "" {
		return User{}, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return User{}, false, fmt.Errorf("%w: user claim: %v", ErrMalformed, err)
	}
	return user, true, nil
}

// AuthDate returns the issuance time claim, or the zero time when absent.
func (p *Payload) AuthDate() (time.Time, error) {
	raw := p.Get("auth_date")
	if raw == "" {
		return time.Time{}, nil
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: auth_date: %v", ErrMalformed, err)
	}
	return time.Unix(sec, 0), nil
}

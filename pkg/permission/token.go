package permission

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// Delimiter separates the hierarchical segments of a token (e.g. "docs.view").
	Delimiter = "."

	// Wildcard is the segment that matches everything at and below its level.
	Wildcard = "*"
)

// Token is a validated permission string in canonical form. Two tokens
// represent the same grant iff their string forms are equal.
type Token string

// Parse validates a raw permission string and returns it as a Token.
//
// A valid token consists of one or more dot-separated segments, each either
// an identifier ([A-Za-z0-9_]+) or the wildcard "*". The wildcard is only
// allowed as the final segment. Errors wrap ErrMalformedToken.
func Parse(raw string) (Token, error) {
	if raw == "" {
		return "", errors.Join(ErrMalformedToken, errors.New("token is empty"))
	}

	segments := strings.Split(raw, Delimiter)
	for i, seg := range segments {
		if seg == Wildcard {
			if i != len(segments)-1 {
				return "", errors.Join(ErrMalformedToken,
					fmt.Errorf("token %q: wildcard segment is only allowed in the final position", raw))
			}
			continue
		}
		if !isIdentifier(seg) {
			return "", errors.Join(ErrMalformedToken,
				fmt.Errorf("token %q: segment %q is not a valid identifier", raw, seg))
		}
	}

	return Token(raw), nil
}

// MustParse is like Parse but panics on a malformed token. It is intended
// for permission constants declared in host application code.
func MustParse(raw string) Token {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseAll validates every raw string and returns the parsed tokens.
//
// Unlike a fail-fast loop it collects every malformed token it finds and
// returns them as a single joined error, so configuration mistakes are
// reported comprehensively in one pass.
func ParseAll(raws []string) ([]Token, error) {
	if len(raws) == 0 {
		return nil, nil
	}

	tokens := make([]Token, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		t, err := Parse(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tokens = append(tokens, t)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tokens, nil
}

// String returns the canonical string form of the token.
func (t Token) String() string {
	return string(t)
}

// Segments splits the token into its hierarchical parts.
func (t Token) Segments() []string {
	return strings.Split(string(t), Delimiter)
}

// IsWildcard reports whether the token's final segment is the wildcard,
// including the bare global wildcard "*".
func (t Token) IsWildcard() bool {
	return string(t) == Wildcard || strings.HasSuffix(string(t), Delimiter+Wildcard)
}

// Normalize removes duplicate tokens and sorts the result alphabetically.
// Returns nil for empty input.
func Normalize(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}

	unique := make(map[Token]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}

	normalized := make([]Token, 0, len(unique))
	for t := range unique {
		normalized = append(normalized, t)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })

	return normalized
}

// isIdentifier reports whether s is a non-empty run of [A-Za-z0-9_].
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

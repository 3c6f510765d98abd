package permission

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Set is a collection of granted tokens with O(1) membership checks.
// A Set is treated as immutable once published to concurrent readers.
type Set map[Token]struct{}

// NewSet builds a Set from the given tokens.
func NewSet(tokens ...Token) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts a token into the set.
func (s Set) Add(t Token) {
	s[t] = struct{}{}
}

// Has reports whether the exact token is present in the set.
// It performs no wildcard matching; use IsGranted for that.
func (s Set) Has(t Token) bool {
	_, ok := s[t]
	return ok
}

// Len returns the number of tokens in the set.
func (s Set) Len() int {
	return len(s)
}

// List returns the set's tokens sorted alphabetically.
func (s Set) List() []Token {
	tokens := make([]Token, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// Clone returns a shallow copy of the set.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for t := range s {
		clone[t] = struct{}{}
	}
	return clone
}

// IsGranted reports whether the granted set satisfies the requested token.
//
// The requested token must be concrete; a wildcard request fails with
// ErrInvalidRequest. Matching proceeds from the most specific form to the
// least specific one:
//
//  1. Exact membership of the requested token.
//  2. The global wildcard "*".
//  3. Prefix wildcards, longest prefix first: for requested "docs.edit.draft"
//     the candidates are "docs.edit.*" then "docs.*".
//
// A prefix wildcard does not cover its own bare prefix: "docs.*" grants
// "docs.view" but not "docs".
func IsGranted(granted Set, requested Token) (bool, error) {
	if requested.IsWildcard() {
		return false, errors.Join(ErrInvalidRequest,
			fmt.Errorf("requested token %q contains a wildcard", requested))
	}

	if granted.Has(requested) {
		return true, nil
	}
	if granted.Has(Wildcard) {
		return true, nil
	}

	segments := requested.Segments()
	for k := len(segments) - 1; k >= 1; k-- {
		candidate := Token(strings.Join(segments[:k], Delimiter) + Delimiter + Wildcard)
		if granted.Has(candidate) {
			return true, nil
		}
	}

	return false, nil
}

// IsAnyGranted reports whether at least one of the requested tokens is
// granted. An empty request list is vacuously granted.
func IsAnyGranted(granted Set, requested []Token) (bool, error) {
	if len(requested) == 0 {
		return true, nil
	}
	for _, req := range requested {
		ok, err := IsGranted(granted, req)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// IsAllGranted reports whether every requested token is granted.
// An empty request list is vacuously granted.
func IsAllGranted(granted Set, requested []Token) (bool, error) {
	if len(requested) == 0 {
		return true, nil
	}
	for _, req := range requested {
		ok, err := IsGranted(granted, req)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

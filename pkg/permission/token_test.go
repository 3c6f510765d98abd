package permission_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/permission"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "simple token",
			input: "docs",
		},
		{
			name:  "hierarchical token",
			input: "docs.edit.draft",
		},
		{
			name:  "global wildcard",
			input: "*",
		},
		{
			name:  "prefix wildcard",
			input: "docs.*",
		},
		{
			name:  "deep prefix wildcard",
			input: "admin.users.*",
		},
		{
			name:  "underscores and digits",
			input: "app_v2.home_page.get",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty segment",
			input:   "docs..view",
			wantErr: true,
		},
		{
			name:    "trailing delimiter",
			input:   "docs.",
			wantErr: true,
		},
		{
			name:    "leading delimiter",
			input:   ".docs",
			wantErr: true,
		},
		{
			name:    "wildcard not in final position",
			input:   "docs.*.view",
			wantErr: true,
		},
		{
			name:    "leading wildcard with suffix",
			input:   "*.docs",
			wantErr: true,
		},
		{
			name:    "embedded whitespace",
			input:   "docs. view",
			wantErr: true,
		},
		{
			name:    "disallowed character",
			input:   "docs.vi-ew",
			wantErr: true,
		},
		{
			name:    "partial wildcard segment",
			input:   "docs.v*",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tok, err := permission.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, permission.ErrMalformedToken))
				assert.Empty(t, tok)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, tok.String())
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, permission.Token("docs.view"), permission.MustParse("docs.view"))
	})

	t.Run("malformed token panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			permission.MustParse("docs..view")
		})
	})
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()

		tokens, err := permission.ParseAll([]string{"docs.view", "docs.*", "*"})
		require.NoError(t, err)
		assert.Equal(t, []permission.Token{"docs.view", "docs.*", "*"}, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		tokens, err := permission.ParseAll(nil)
		require.NoError(t, err)
		assert.Nil(t, tokens)
	})

	t.Run("reports every malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := permission.ParseAll([]string{"docs.view", "", "bad..token", "*.oops"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, permission.ErrMalformedToken))
		assert.Contains(t, err.Error(), "bad..token")
		assert.Contains(t, err.Error(), "*.oops")
	})
}

func TestTokenSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"docs", "edit", "draft"}, permission.Token("docs.edit.draft").Segments())
	assert.Equal(t, []string{"docs"}, permission.Token("docs").Segments())
}

func TestTokenIsWildcard(t *testing.T) {
	t.Parallel()

	assert.True(t, permission.Token("*").IsWildcard())
	assert.True(t, permission.Token("docs.*").IsWildcard())
	assert.False(t, permission.Token("docs").IsWildcard())
	assert.False(t, permission.Token("docs.view").IsWildcard())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("dedupes and sorts", func(t *testing.T) {
		t.Parallel()

		got := permission.Normalize([]permission.Token{"docs.view", "admin.*", "docs.view", "billing.read"})
		assert.Equal(t, []permission.Token{"admin.*", "billing.read", "docs.view"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, permission.Normalize(nil))
	})
}

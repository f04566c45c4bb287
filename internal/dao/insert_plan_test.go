package dao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumn(t *testing.T) {
	cases := []struct {
		name string
		err  error
		col  string
		ok   bool
	}{
		{"sqlite insert", errors.New("table share_token has no column named metadata"), "metadata", true},
		{"sqlite select", errors.New("SQL logic error: no such column: allow_comments (1)"), "allow_comments", true},
		{"mysql", errors.New("Error 1054 (42S22): Unknown column 'scope_anchor_id' in 'field list'"), "scope_anchor_id", true},
		{"postgres", errors.New(`ERROR: column "last_viewed_at" of relation "share_token" does not exist (SQLSTATE 42703)`), "last_viewed_at", true},
		{"unrelated", errors.New("connection refused"), "", false},
		{"nil", nil, "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col, ok := missingColumn(c.err)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.col, col)
		})
	}
}

func TestPruneColumns(t *testing.T) {
	cols := map[string]interface{}{
		"token":    "abc",
		"metadata": "{}",
		"title":    "x",
	}
	out := pruneColumns(cols, map[string]bool{"metadata": true})

	assert.Equal(t, map[string]interface{}{"token": "abc", "title": "x"}, out)
	// 入参不被修改
	assert.Len(t, cols, 3)
}

func TestIsDuplicateErr(t *testing.T) {
	assert.True(t, isDuplicateErr(errors.New("UNIQUE constraint failed: share_token.token")))
	assert.True(t, isDuplicateErr(errors.New("Error 1062: Duplicate entry 'abc' for key 'token'")))
	assert.True(t, isDuplicateErr(errors.New(`ERROR: duplicate key value violates unique constraint "idx_share_token_token"`)))
	assert.False(t, isDuplicateErr(errors.New("connection reset")))
	assert.False(t, isDuplicateErr(nil))
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFixtures drives every spec.md §8 end-to-end scenario through the
// full lexer→parser→types→interp pipeline via testdata/*.co, the way
// go-mix's main_test.go exercises the parser against whole source
// samples, but against the complete pipeline and real expected output
// instead of a printed AST.
func TestFixtures(t *testing.T) {
	cases := []struct {
		file       string
		wantOutput string
		wantErr    string
	}{
		{file: "assignment_chain.co", wantOutput: "33 7\n"},
		{file: "parenthesized_arithmetic.co", wantOutput: "18\n"},
		{file: "while_loop.co", wantOutput: "3\n"},
		{file: "fibonacci.co", wantOutput: "13\n"},
		{file: "reverse_string.co", wantOutput: "olleh\n"},
		{file: "block_scope_no_leak.co", wantOutput: "3\n"},
		{file: "range_sum.co", wantOutput: "15\n"},
		{file: "division_by_zero.co", wantErr: "Division by zero detected"},
		{file: "redeclaration.co", wantErr: `"x" is declared again`},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("..", "..", "testdata", tc.file))
			require.NoError(t, err)

			var out bytes.Buffer
			runErr := interpretToBuffer(string(src), &out)

			if tc.wantErr != "" {
				require.Error(t, runErr)
				assert.Contains(t, runErr.Error(), tc.wantErr)
				return
			}
			require.NoError(t, runErr)
			assert.Equal(t, tc.wantOutput, out.String())
		})
	}
}

func TestFormatPassError(t *testing.T) {
	_, err := parseAndCheck(`var(int) x; var(int) x;`)
	require.Error(t, err)
	assert.Contains(t, formatPassError(err), "SemanticError")
}

package fixture

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/fakepeople/internal/person"
)

func generated(t *testing.T, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, person.NewSeeded(3), n))
	return buf.Bytes()
}

func TestCheckGenerated(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	require.NoError(t, fs.WriteFile("fake_people.csv", generated(t, RecordCount), 0o644))

	rep, err := Check(fs, "fake_people.csv")
	require.NoError(t, err)
	assert.True(t, rep.OK(), "problems: %v", rep.Problems)
	assert.Equal(t, RecordCount, rep.Records)
}

func TestCheckMissingFile(t *testing.T) {
	fs := zfilesystem.NewMemFS()
	_, err := Check(fs, "nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestValidateProblems(t *testing.T) {
	id := strings.Repeat("a", person.IDLen)

	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "empty",
			input:    "",
			wantLine: 0,
			wantMsg:  "missing header",
		},
		{
			name:     "wrong header",
			input:    "id,mail,name,is_parent\n",
			wantLine: 1,
			wantMsg:  "header",
		},
		{
			name:     "short id",
			input:    header + "\nabc,a@b.c,Jane Doe,true\n",
			wantLine: 2,
			wantMsg:  "id \"abc\"",
		},
		{
			name:     "id with symbol",
			input:    header + "\n" + strings.Repeat("a", 39) + "!,a@b.c,Jane Doe,true\n",
			wantLine: 2,
			wantMsg:  "alphanumeric",
		},
		{
			name:     "email without at",
			input:    header + "\n" + id + ",nope,Jane Doe,true\n",
			wantLine: 2,
			wantMsg:  "no @",
		},
		{
			name:     "empty name",
			input:    header + "\n" + id + ",a@b.c, ,false\n",
			wantLine: 2,
			wantMsg:  "name is empty",
		},
		{
			name:     "numeric bool",
			input:    header + "\n" + id + ",a@b.c,Jane Doe,1\n",
			wantLine: 2,
			wantMsg:  "is_parent",
		},
		{
			name:     "field count",
			input:    header + "\n" + id + ",a@b.c,Jane,Doe,true\n",
			wantLine: 2,
			wantMsg:  "5 fields",
		},
		{
			name:     "blank line",
			input:    header + "\n" + id + ",a@b.c,Jane Doe,true\n\n" + id + ",a@b.c,Jane Doe,true\n",
			wantLine: 3,
			wantMsg:  "blank line",
		},
		{
			name:     "crlf line endings",
			input:    header + "\r\n" + id + ",a@b.c,Jane Doe,true\r\n",
			wantLine: 1,
			wantMsg:  "carriage return",
		},
		{
			name:     "no final newline",
			input:    header + "\n" + id + ",a@b.c,Jane Doe,true",
			wantLine: 2,
			wantMsg:  "missing final newline",
		},
		{
			name:     "quoted field",
			input:    header + "\n\"" + id + "\",a@b.c,Jane Doe,true\n",
			wantLine: 2,
			wantMsg:  "quoted field",
		},
		{
			name:     "record count",
			input:    header + "\n" + id + ",a@b.c,Jane Doe,true\n",
			wantLine: 0,
			wantMsg:  "1 records, want 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Validate(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.False(t, rep.OK())

			found := false
			for _, p := range rep.Problems {
				if p.Line == tt.wantLine && strings.Contains(p.Msg, tt.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "want problem at line %d containing %q, got %v", tt.wantLine, tt.wantMsg, rep.Problems)
		})
	}
}

func TestValidateGarbageLineNumber(t *testing.T) {
	data := generated(t, RecordCount)
	lines := strings.Split(string(data), "\n")
	lines[500] = "garbage"
	corrupted := strings.Join(lines, "\n")

	rep, err := Validate(strings.NewReader(corrupted))
	require.NoError(t, err)

	require.NotEmpty(t, rep.Problems)
	assert.Equal(t, 501, rep.Problems[0].Line)
	assert.Equal(t, RecordCount, rep.Records)
}

func TestValidateMalformedCSV(t *testing.T) {
	_, err := Validate(strings.NewReader(header + "\n\"unterminated,a,b,c\n"))
	assert.Error(t, err)
}

func TestProblemString(t *testing.T) {
	assert.Equal(t, "line 3: bad", Problem{Line: 3, Msg: "bad"}.String())
	assert.Equal(t, "whole", Problem{Msg: "whole"}.String())
}

package fixture

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/zarlcorp/fakepeople/internal/person"
)

// ReadFileFS reads whole files by name.
type ReadFileFS interface {
	ReadFile(name string) ([]byte, error)
}

// Problem is one content defect found in a fixture.
type Problem struct {
	Line int // 1-based; 0 when the problem concerns the whole file
	Msg  string
}

func (p Problem) String() string {
	if p.Line == 0 {
		return p.Msg
	}
	return fmt.Sprintf("line %d: %s", p.Line, p.Msg)
}

// Report summarizes a fixture validation.
type Report struct {
	Records  int
	Problems []Problem
}

// OK returns true if no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) add(line int, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// Check reads the named fixture from fsys and validates it.
func Check(fsys ReadFileFS, name string) (Report, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return Report{}, fmt.Errorf("check fixture: read %s: %w", name, err)
	}

	rep, err := Validate(bytes.NewReader(data))
	if err != nil {
		return rep, fmt.Errorf("check fixture: %s: %w", name, err)
	}
	return rep, nil
}

// Validate checks a fixture stream. Content defects are collected in the
// report; malformed CSV and read failures are returned as errors.
func Validate(r io.Reader) (Report, error) {
	var rep Report

	data, err := io.ReadAll(r)
	if err != nil {
		return rep, fmt.Errorf("read fixture: %w", err)
	}
	checkLayout(&rep, data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		rep.add(0, "empty file, missing header")
		return rep, nil
	}
	if err != nil {
		return rep, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, person.Header) {
		rep.add(1, "header is %q, want %q", strings.Join(header, ","), strings.Join(person.Header, ","))
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, fmt.Errorf("read record: %w", err)
		}

		line, _ := cr.FieldPos(0)
		rep.Records++
		checkRecord(&rep, line, fields)
	}

	if rep.Records != RecordCount {
		rep.add(0, "%d records, want %d", rep.Records, RecordCount)
	}

	return rep, nil
}

// checkLayout reports byte-level defects that the csv reader would hide:
// blank lines, carriage returns, quoting and a missing final newline.
func checkLayout(rep *Report, data []byte) {
	if len(data) == 0 {
		return
	}

	lines := bytes.Split(data, []byte("\n"))
	last := len(lines) - 1
	if len(lines[last]) > 0 {
		rep.add(last+1, "missing final newline")
	}

	var crLine, quoteLine int
	for i, line := range lines {
		if len(line) == 0 && i < last {
			rep.add(i+1, "blank line")
		}
		if crLine == 0 && bytes.IndexByte(line, '\r') >= 0 {
			crLine = i + 1
		}
		if quoteLine == 0 && bytes.IndexByte(line, '"') >= 0 {
			quoteLine = i + 1
		}
	}

	if crLine > 0 {
		rep.add(crLine, "carriage return, lines must end in a bare \\n")
	}
	if quoteLine > 0 {
		rep.add(quoteLine, "quoted field, values must be written unquoted")
	}
}

func checkRecord(rep *Report, line int, fields []string) {
	if len(fields) != len(person.Header) {
		rep.add(line, "%d fields, want %d", len(fields), len(person.Header))
		return
	}

	if !person.IsID(fields[0]) {
		rep.add(line, "id %q is not %d alphanumeric characters", fields[0], person.IDLen)
	}
	if !strings.Contains(fields[1], "@") {
		rep.add(line, "email %q has no @", fields[1])
	}
	if strings.TrimSpace(fields[2]) == "" {
		rep.add(line, "name is empty")
	}
	if fields[3] != "true" && fields[3] != "false" {
		rep.add(line, "is_parent %q is not true or false", fields[3])
	}
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/fakepeople/internal/fixture"
	"golang.org/x/term"
)

// maxListed caps the problems printed in a report.
const maxListed = 20

// styles renders report fragments. Plain output uses no escapes.
type styles struct {
	title func(string) string
	ok    func(string) string
	fail  func(string) string
	muted func(string) string
}

func plain(s string) string { return s }

func newStyles(styled bool) styles {
	if !styled {
		return styles{title: plain, ok: plain, fail: plain, muted: plain}
	}
	bold := lipgloss.NewStyle().Bold(true)
	return styles{
		title: func(s string) string { return bold.Render(s) },
		ok:    func(s string) string { return zstyle.StatusOK.Render(s) },
		fail:  func(s string) string { return zstyle.StatusErr.Render(s) },
		muted: func(s string) string { return zstyle.MutedText.Render(s) },
	}
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printReport(w io.Writer, path string, rep fixture.Report, st styles) {
	fmt.Fprintf(w, "  %s\n", st.title(path))

	if rep.OK() {
		fmt.Fprintf(w, "  %s %d records\n", st.ok("ok  "), rep.Records)
		return
	}

	fmt.Fprintf(w, "  %s %d records, %d problems\n", st.fail("fail"), rep.Records, len(rep.Problems))
	for i, p := range rep.Problems {
		if i == maxListed {
			fmt.Fprintf(w, "  %s\n", st.muted(fmt.Sprintf("... %d more", len(rep.Problems)-maxListed)))
			break
		}
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

package clone

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/chime-experiment/mkchimeenv/internal/registry"
)

// gitClient abstracts repository retrieval so the coordinator can be
// exercised without a git binary.
type gitClient interface {
	clone(ctx context.Context, repo registry.Repository, dest string, report func(Event)) error
}

// execGit shells out to the git binary and decodes its stderr stream into
// progress events.
type execGit struct{}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}

func (execGit) clone(ctx context.Context, repo registry.Repository, dest string, report func(Event)) error {
	args := []string{"clone", "--progress"}
	if repo.Ref != "" {
		args = append(args, "--branch", repo.Ref)
	}
	args = append(args, repo.URL, dest)

	cmd := exec.CommandContext(ctx, "git", args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("attaching to git: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting git: %w", err)
	}

	// git redraws progress lines with carriage returns, so split on either
	// terminator. The last few lines are kept for error reporting.
	var tail []string
	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanProgress)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tail = append(tail, line)
		if len(tail) > 8 {
			tail = tail[1:]
		}
		if ev, ok := parseProgressLine(line); ok {
			report(ev)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("git clone: %w\n%s", err, strings.Join(tail, "\n"))
	}
	return nil
}

// scanProgress is a bufio.SplitFunc yielding tokens terminated by either a
// newline or a carriage return.
func scanProgress(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var (
	countsRE  = regexp.MustCompile(`\((\d+)/(\d+)\)`)
	objectsRE = regexp.MustCompile(`:\s+(\d+)`)
	percentRE = regexp.MustCompile(`\d+% \(\d+/\d+\)`)
)

// stagePhrases maps git's progress phrases to operation signal bits, checked
// in order against the start of each line. Writing objects appears on local
// clones; its bit carries no named stage and lands on the Unknown meter.
var stagePhrases = []struct {
	phrase string
	op     int
}{
	{"Enumerating objects", OpCounting},
	{"Counting objects", OpCounting},
	{"Compressing objects", OpCompressing},
	{"Writing objects", OpWriting},
	{"Receiving objects", OpReceiving},
	{"Resolving deltas", OpResolving},
}

// parseProgressLine decodes one stderr line into a progress event. Lines
// that carry no progress information, such as "Cloning into ...", report
// ok=false. Unrecognized lines that still look like progress become signals
// without a stage bit.
func parseProgressLine(line string) (Event, bool) {
	line = strings.TrimPrefix(line, "remote: ")

	op := 0
	rest := line
	matched := false
	for _, sp := range stagePhrases {
		if strings.HasPrefix(line, sp.phrase) {
			op = sp.op
			rest = line[len(sp.phrase):]
			matched = true
			break
		}
	}
	if !matched && !percentRE.MatchString(line) {
		return Event{}, false
	}

	ev := Event{Op: op}
	if m := countsRE.FindStringSubmatch(rest); m != nil {
		ev.Current, _ = strconv.ParseInt(m[1], 10, 64)
		ev.Total, _ = strconv.ParseInt(m[2], 10, 64)
	} else if m := objectsRE.FindStringSubmatch(rest); m != nil {
		// "Enumerating objects: 5040" reports a count with no total yet.
		ev.Current, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if strings.HasSuffix(line, "done.") {
		ev.Op |= OpEnd
	}
	return ev, true
}

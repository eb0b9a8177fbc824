package ssfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// maxLine is the longest line we accept. Alignments can have very long
// lines.
const maxLine = 16 * 1024 * 1024

// readFunc is what every format reader looks like. No models and no
// error means "not my format".
type readFunc func(s *session, r io.Reader) ([]*ssmodel.Model, error)

// session is the state for one Load call. Nothing in here is shared
// between calls, so loads can run in parallel.
type session struct {
	ctx     context.Context
	log     zerolog.Logger
	label   string   // source name for errors and models
	pending []string // warnings not yet attached to a model
}

func newSession(ctx context.Context, label string, log zerolog.Logger) *session {
	return &session{ctx: ctx, label: label, log: log}
}

// warnMsg formats a warning. line 0 means no line.
func warnMsg(line int, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if line > 0 {
		msg = fmt.Sprintf("line %d: %s", line, msg)
	}
	return msg
}

// warn records a problem we stepped around. It goes to the next model
// built.
func (s *session) warn(line int, format string, args ...any) {
	s.pending = append(s.pending, warnMsg(line, format, args...))
}

// defaultName is used for models when the file does not give a name.
func (s *session) defaultName() string {
	if s.label == "" {
		return "unnamed"
	}
	return filepath.Base(s.label)
}

// build attaches pending warnings and the source to b and builds it.
func (s *session) build(b *ssmodel.Builder) (*ssmodel.Model, error) {
	for _, w := range s.pending {
		b.Warn(w)
	}
	s.pending = s.pending[:0]
	b.SetSource(s.label)
	return b.Build()
}

// done hands warnings left over at the end of a file to the last model.
func (s *session) done(models []*ssmodel.Model) []*ssmodel.Model {
	if len(models) > 0 && len(s.pending) > 0 {
		last := models[len(models)-1]
		last.Warnings = append(last.Warnings, s.pending...)
	}
	s.pending = nil
	return models
}

// syntaxErr is a broken record at a line.
func (s *session) syntaxErr(sc *lineScanner, detail string, err error) *LoadError {
	return &LoadError{
		Kind:   FileFormatOrSyntax,
		Source: s.label,
		Detail: detail,
		Line:   sc.n,
		Text:   sc.text(),
		Err:    err,
	}
}

// lineScanner is a wrapper around bufio.Scanner that counts lines for
// error messages and keeps an eye on the context. The text it hands
// back has leading and trailing white space removed.
type lineScanner struct {
	*bufio.Scanner
	ctx   context.Context
	n     int    // line number
	ctext string // current line, trimmed
	err   error
}

func newLineScanner(ctx context.Context, r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &lineScanner{Scanner: sc, ctx: ctx}
}

// scan moves to the next line. It returns false at the end of input,
// on a read error or when the context is done.
func (sc *lineScanner) scan() bool {
	if err := sc.ctx.Err(); err != nil {
		sc.err = err
		return false
	}
	if !sc.Scan() {
		sc.err = sc.Scanner.Err()
		return false
	}
	sc.n++
	sc.ctext = strings.TrimSpace(sc.Text())
	return true
}

func (sc *lineScanner) text() string { return sc.ctext }

// ioErr is non-nil if scanning stopped for any reason but the end of
// the input. It is always a LoadingFailed error, which stops the
// cascade.
func (sc *lineScanner) ioErr(label string) error {
	if sc.err == nil {
		return nil
	}
	return &LoadError{Kind: LoadingFailed, Source: label, Line: sc.n, Detail: "reading", Err: sc.err}
}

// 19 Oct 2026

// Package ssfile reads secondary structure files. It knows connectivity
// tables (CT), base pair lists (BPSEQ), T-Coffee libraries, Stockholm
// alignments and dot-bracket files. If we are not told the format, we
// try each reader in turn and take the first one that finds something.
package ssfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrew-torda/sstruct/pkg/ssmodel"
	"github.com/andrew-torda/sstruct/pkg/zwrap"
)

// Options control a load. The zero value is fine.
type Options struct {
	Quiet       bool            // do not log warnings
	ByExtension bool            // with Unknown, try the format the file name suggests first
	Logger      *zerolog.Logger // nil means no logging
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// attempt rewinds rs and runs one reader over it. Whatever goes wrong,
// the error is a *LoadError.
func attempt(ctx context.Context, rs io.ReadSeeker, label string, f Format, log zerolog.Logger) ([]*ssmodel.Model, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, &LoadError{Kind: LoadingFailed, Source: label, Detail: "rewinding", Err: err}
	}
	s := newSession(ctx, label, log)
	models, err := readers[f](s, rs)
	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			err = &LoadError{Kind: FileFormatOrSyntax, Source: label, Detail: f.String(), Err: err}
		}
		return nil, err
	}
	return models, nil
}

// report logs the warnings of the models we are handing back.
func report(models []*ssmodel.Model, label string, f Format, opts Options, log zerolog.Logger) {
	log.Debug().Str("source", label).Stringer("format", f).Int("models", len(models)).Msg("loaded")
	if opts.Quiet {
		return
	}
	for _, m := range models {
		for _, w := range m.Warnings {
			log.Warn().Str("source", label).Str("model", m.Name).Msg(w)
		}
	}
}

// order is the list of formats to try for Unknown.
func order(label string, opts Options) []Format {
	if !opts.ByExtension {
		return cascade
	}
	guess := FormatFromName(label)
	if guess == Unknown {
		return cascade
	}
	ret := []Format{guess}
	for _, f := range cascade {
		if f != guess {
			ret = append(ret, f)
		}
	}
	return ret
}

// Load reads all the structures in rs. label is used in errors and as
// the model source. With a concrete hint only that reader is used and
// its errors come back as they are. With Unknown, readers are tried in
// a fixed order and format errors are only logged at debug level. Read
// failures stop everything. The returned error is always a *LoadError.
func Load(ctx context.Context, rs io.ReadSeeker, label string, hint Format, opts Options) ([]*ssmodel.Model, error) {
	log := opts.logger()
	if hint >= nFormat {
		return nil, &LoadError{Kind: FileFormatOrSyntax, Source: label, Detail: "no reader for " + hint.String()}
	}
	if hint != Unknown {
		models, err := attempt(ctx, rs, label, hint, log)
		if err != nil {
			return nil, err
		}
		if len(models) == 0 {
			return nil, &LoadError{Kind: FileFormatOrSyntax, Source: label, Detail: "no " + hint.String() + " records found"}
		}
		report(models, label, hint, opts, log)
		return models, nil
	}

	var tried []string
	var last error
	for _, f := range order(label, opts) {
		tried = append(tried, f.String())
		models, err := attempt(ctx, rs, label, f, log)
		switch {
		case err == nil && len(models) > 0:
			report(models, label, f, opts, log)
			return models, nil
		case err == nil:
			log.Debug().Str("source", label).Stringer("format", f).Msg("nothing found")
		case !IsKind(err, FileFormatOrSyntax):
			return nil, err
		default:
			log.Debug().Str("source", label).Stringer("format", f).Err(err).Msg("rejected")
			last = err
		}
	}
	return nil, &LoadError{
		Kind:   FileFormatOrSyntax,
		Source: label,
		Detail: "not readable as " + strings.Join(tried, ", "),
		Err:    last,
	}
}

// LoadBytes reads structures from a buffer.
func LoadBytes(ctx context.Context, b []byte, label string, hint Format, opts Options) ([]*ssmodel.Model, error) {
	return Load(ctx, bytes.NewReader(b), label, hint, opts)
}

// LoadReader is for streams we cannot rewind, like stdin. Everything is
// read into memory first. Gzipped input is decompressed.
func LoadReader(ctx context.Context, r io.Reader, label string, hint Format, opts Options) ([]*ssmodel.Model, error) {
	b, err := zwrap.ReadAllMaybe(r)
	if err != nil {
		return nil, &LoadError{Kind: LoadingFailed, Source: label, Detail: "reading", Err: err}
	}
	return LoadBytes(ctx, b, label, hint, opts)
}

// LoadFile reads the structures in a file, which may be gzipped. The
// file is closed before we return, whatever happens.
func LoadFile(ctx context.Context, fname string, hint Format, opts Options) ([]*ssmodel.Model, error) {
	src, err := zwrap.Open(fname)
	if err != nil {
		kind := LoadingFailed
		if errors.Is(err, fs.ErrPermission) {
			kind = PermissionDenied
		}
		return nil, &LoadError{Kind: kind, Source: fname, Detail: "opening", Err: err}
	}
	defer src.Close()
	return LoadBytes(ctx, src.Bytes(), fname, hint, opts)
}

// 19 Oct 2026

// Package ssload is the ssload command: read secondary structure files,
// show them, convert them or check a whole directory of them.
package ssload

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrew-torda/sstruct/pkg/batch"
	"github.com/andrew-torda/sstruct/pkg/common"
	"github.com/andrew-torda/sstruct/pkg/config"
	"github.com/andrew-torda/sstruct/pkg/ssfile"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// app is what the commands share.
type app struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	format string // --format as typed
	hint   ssfile.Format
	log    zerolog.Logger
}

// NewRootCmd builds the command tree. Settings in cfg are the flag
// defaults.
func NewRootCmd(cfg *config.Config, in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: cfg, in: in, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "ssload",
		Short: "Read RNA secondary structure files",
		Long: `ssload reads connectivity tables (CT), base pair lists (BPSEQ),
T-Coffee libraries, Stockholm alignments and dot-bracket files.
Without --format, each reader is tried in turn. Gzipped files are fine.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.format, "format", "f", "auto", "input format: ct, bpseq, tcoffee, stockholm, dotbracket or auto")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "do not report problems found in input files")
	pf.BoolVar(&cfg.ByExtension, "by-extension", cfg.ByExtension, "with auto, try the format the file name suggests first")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "give up after this long, 0 for never")

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.AddCommand(a.showCmd(), a.convertCmd(), a.scanCmd(), a.randomCmd(), a.supportCmd())
	return root
}

// setup runs after flags are parsed.
func (a *app) setup() error {
	if err := a.cfg.Check(); err != nil {
		return err
	}
	lvl, _ := a.cfg.Level()
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, NoColor: true}).
		Level(lvl).With().Timestamp().Logger()
	hint, err := ssfile.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.hint = hint
	return nil
}

// withTimeout adds the timeout, if there is one.
func (a *app) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(parent, a.cfg.Timeout)
	}
	return context.WithCancel(parent)
}

func (a *app) opts() ssfile.Options { return a.cfg.LoadOptions(&a.log) }

// load reads one file. "-" is standard input.
func (a *app) load(ctx context.Context, fname string) ([]*ssmodel.Model, error) {
	var models []*ssmodel.Model
	var err error
	if fname == "-" {
		models, err = ssfile.LoadReader(ctx, a.in, "stdin", a.hint, a.opts())
	} else {
		models, err = ssfile.LoadFile(ctx, fname, a.hint, a.opts())
	}
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("file", fname).Int("models", len(models)).Msg("read")
	return models, nil
}

func (a *app) showCmd() *cobra.Command {
	var contacts bool
	cmd := &cobra.Command{
		Use:   "show <file>...",
		Short: "Print the structures in dot-bracket format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			for _, fname := range args {
				models, err := a.load(ctx, fname)
				if err != nil {
					return err
				}
				for _, m := range models {
					if err := ssfile.WriteDotBracket(a.out, m); err != nil {
						return err
					}
					if !contacts {
						continue
					}
					if err := writeContacts(a.out, m); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&contacts, "contacts", false, "after each structure, print its contact map")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var to, outName string
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Write the structures in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFmt, err := ssfile.ParseFormat(to)
			if err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			models, err := a.load(ctx, args[0])
			if err != nil {
				return err
			}
			if outName == "" || outName == "-" {
				return ssfile.Write(a.out, outFmt, models...)
			}
			fp, err := os.Create(outName)
			if err != nil {
				return fmt.Errorf("output file: %w", err)
			}
			if err := ssfile.Write(fp, outFmt, models...); err != nil {
				fp.Close()
				return err
			}
			return fp.Close()
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "db", "output format: db, ct or bpseq")
	cmd.Flags().StringVarP(&outName, "output", "o", "", "output file, default standard output")
	return cmd
}

// firstLine is for errors that go over more than one line.
func firstLine(s string) string {
	before, _, _ := strings.Cut(s, "\n")
	return before
}

func (a *app) scanCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Read every file in a directory and say what was found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			results, err := batch.LoadDir(ctx, args[0], workers, a.hint, a.opts())
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(a.out, "%s\tfailed: %s\n", r.Path, firstLine(r.Err.Error()))
					continue
				}
				fmt.Fprintf(a.out, "%s\t%d\n", r.Path, len(r.Models))
			}
			nOK, nModel, nFail := batch.Count(results)
			a.log.Info().Int("files", nOK).Int("models", nModel).Int("failed", nFail).Msg("scan done")
			if nFail > 0 {
				return fmt.Errorf("%d of %d files could not be read", nFail, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", a.cfg.Workers, "files to read at once")
	return cmd
}

// Execute runs the command line and returns the exit code.
func Execute() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return common.ExitUsageError
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	root := NewRootCmd(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ssload:", err)
		return common.ExitFailure
	}
	return common.ExitSuccess
}

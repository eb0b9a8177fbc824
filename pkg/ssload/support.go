package ssload

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/sstruct/pkg/ss"
	"github.com/andrew-torda/sstruct/pkg/ssfile"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
	"github.com/andrew-torda/sstruct/pkg/zwrap"
)

// writeContacts prints the contact map, one row per residue, with 1
// where residues are paired.
func writeContacts(w io.Writer, m *ssmodel.Model) error {
	cm := m.ContactMap()
	nr, nc := cm.Size()
	row := make([]byte, nc+1)
	row[nc] = '\n'
	for i := 0; i < nr; i++ {
		for j, v := range cm.Mat[i] {
			row[j] = '.'
			if v != 0 {
				row[j] = '1'
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// readAll gets the bytes of a file, which may be gzipped, or of
// standard input.
func (a *app) readAll(fname string) ([]byte, error) {
	if fname == "-" {
		return zwrap.ReadAllMaybe(a.in)
	}
	src, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return bytes.Clone(src.Bytes()), nil
}

// supportCmd says how well each consensus pair of a Stockholm alignment
// is kept by the sequences.
func (a *app) supportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "support <file>",
		Short: "For each consensus pair in a Stockholm file, the fraction of sequences with both residues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			b, err := a.readAll(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			alis, err := ssfile.ReadAlignments(ctx, bytes.NewReader(b))
			if err != nil {
				return err
			}
			if len(alis) == 0 {
				return fmt.Errorf("%s: no alignment with an SS_cons line", args[0])
			}
			for n, ali := range alis {
				cons, err := ss.Match(ali.Consensus)
				if err != nil {
					return fmt.Errorf("alignment %d: %w", n+1, err)
				}
				sup, err := ali.PairSupport()
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "# alignment %d, %d sequences\n", n+1, len(ali.IDs))
				for i, j := range cons {
					if j > i {
						fmt.Fprintf(a.out, "%d\t%d\t%.2f\n", i+1, j+1, sup.Mat[0][i])
					}
				}
			}
			a.log.Info().Str("file", args[0]).Int("alignments", len(alis)).Msg("support")
			return nil
		},
	}
}

package ssload

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/sstruct/pkg/randss"
)

// randomCmd writes random dot-bracket files for testing and
// benchmarking the readers.
func (a *app) randomCmd() *cobra.Command {
	const iseed int64 = 1637
	var args randss.RandSSArgs
	cmd := &cobra.Command{
		Use:   "random <file> <nseq> <length>",
		Short: "Write random sequences with random structures",
		Long: `random writes nseq dot-bracket records of the given length to file,
or to standard output if file is "-". Structures use up to --nchan bracket
types, so they have pseudoknots if nchan is more than one.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			const emsg = "converting %q to a positive integer"
			nseq, err := strconv.ParseUint(cargs[1], 10, 32)
			if err != nil {
				return fmt.Errorf(emsg, cargs[1])
			}
			nlen, err := strconv.ParseUint(cargs[2], 10, 32)
			if err != nil {
				return fmt.Errorf(emsg, cargs[2])
			}
			args.Nseq, args.Len = int(nseq), int(nlen)
			if cargs[0] == "-" {
				args.Wrtr = a.out
				return randss.RandSSMain(&args)
			}
			fp, err := os.Create(cargs[0])
			if err != nil {
				return fmt.Errorf("file for output: %w", err)
			}
			args.Wrtr = fp
			if err := randss.RandSSMain(&args); err != nil {
				fp.Close()
				return err
			}
			return fp.Close()
		},
	}
	f := cmd.Flags()
	f.Int64VarP(&args.Iseed, "seed", "r", iseed, "random number seed")
	f.IntVar(&args.NChan, "nchan", 2, "number of bracket types")
	f.BoolVarP(&args.Unclose, "unclosed", "u", false, "leave some brackets open")
	f.StringVar(&args.Cmmt, "comment", "random", "title for each record")
	return cmd
}

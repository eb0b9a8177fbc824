// 19 Oct 2026

// Package randss makes random sequences with random secondary
// structures. It is for testing and benchmarking the readers.
package randss

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

var bases = []byte{'A', 'C', 'G', 'U'}

// brackets we use for random structures. The letters are there to get
// pseudoknots in the letter channels too.
var (
	opens  = []byte{'(', '[', '{', '<', 'A', 'B'}
	closes = []byte{')', ']', '}', '>', 'a', 'b'}
)

// RandSSArgs is the set of arguments passed to RandSSMain
type RandSSArgs struct {
	Iseed   int64     // random number seed
	Wrtr    io.Writer // where we write to
	Cmmt    string    // Comment for the sequences
	Nseq    int       // number of sequences
	Len     int       // Length of sequences
	NChan   int       // how many bracket types to use, 1 means plain nesting
	Unclose bool      // leave some openers unclosed at the end
}

// Seq returns a random nucleotide sequence.
func Seq(n int, rnd *rand.Rand) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rnd.Intn(len(bases))]
	}
	return string(b)
}

// Structure returns a random structure string of length n using nchan
// bracket types. Unless unclose is set, every opener gets closed.
// Every close is placed on a non-empty stack, so the result always
// decodes.
func Structure(n, nchan int, unclose bool, rnd *rand.Rand) string {
	if nchan < 1 {
		nchan = 1
	}
	if nchan > len(opens) {
		nchan = len(opens)
	}
	depth := make([]int, nchan)
	open := 0 // total number of open brackets
	b := make([]byte, n)
	for i := range b {
		left := n - i // positions still to fill, including this one
		if !unclose && open >= left {
			c := pickOpen(depth, rnd)
			b[i] = closes[c]
			depth[c]--
			open--
			continue
		}
		switch r := rnd.Intn(3); {
		case r == 0 && open+1 < left:
			c := rnd.Intn(nchan)
			b[i] = opens[c]
			depth[c]++
			open++
		case r == 1 && open > 0:
			c := pickOpen(depth, rnd)
			b[i] = closes[c]
			depth[c]--
			open--
		default:
			b[i] = '.'
		}
	}
	return string(b)
}

// pickOpen returns a random channel which has something open.
func pickOpen(depth []int, rnd *rand.Rand) int {
	var cands []int
	for c, d := range depth {
		if d > 0 {
			cands = append(cands, c)
		}
	}
	return cands[rnd.Intn(len(cands))]
}

// writess writes out records as they come down the channel.
func writess(rChan <-chan [2]string, args *RandSSArgs, wg *sync.WaitGroup) {
	defer wg.Done()
	width := len(fmt.Sprintf("%d", args.Nseq))
	var i int
	for r := range rChan {
		i++
		fmt.Fprintf(args.Wrtr, ">%s %[2]*d\n%s\n%s\n", args.Cmmt, width, i, r[0], r[1])
	}
}

// RandSSMain writes random dot-bracket records to args.Wrtr.
func RandSSMain(args *RandSSArgs) error {
	if args.Wrtr == nil {
		return fmt.Errorf("randss: no writer")
	}
	var wg sync.WaitGroup
	rnd := rand.New(rand.NewSource(args.Iseed))
	rChan := make(chan [2]string)
	wg.Add(1)
	go writess(rChan, args, &wg)
	for i := 0; i < args.Nseq; i++ {
		rChan <- [2]string{Seq(args.Len, rnd), Structure(args.Len, args.NChan, args.Unclose, rnd)}
	}
	close(rChan)
	wg.Wait()
	return nil
}

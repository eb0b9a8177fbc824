// brokenio is a wrapper around an io.ReadSeeker. It lets us set rates of
// failed read operations, so we can see that read errors come back to
// the caller and are not mistaken for a file in the wrong format.
// Typical use: You have a bytes.Reader or an open file. You write
// rdr = brokenio.NewReader(rdr, seed) and then set the failure rates.
// Everything then works as before, but with artificial errors.
// When we introduce an error, we return ErrBroken.
// When we introduce a failure on the first read, we return without an
// error. This is what one often sees on a zero length file.

package brokenio

import (
	"errors"
	"io"
	"math/rand"
)

// ErrBroken is the error returned for an injected failure.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A Reader is modelled on the Readers in the standard library, but with
// variables controlling the frequency of errors. Probabilities are the
// fraction of calls that fail, so 0.05 means failure in 5% of the cases.
type Reader struct {
	rdrOrig      io.ReadSeeker
	rnd          *rand.Rand
	probZeroFile float32 // probability of a zero length file on the first read
	probFail     float32 // probability a read fails
	fracFail     float32 // how much of the buffer a failed read wipes out
	failAfter    int     // every read fails after this many bytes, -1 means never
	nCalled      int
	nByte        int
}

// NewReader returns a wrapper around rIn. By default nothing fails.
func NewReader(rIn io.ReadSeeker, seed int64) *Reader {
	return &Reader{
		rdrOrig:   rIn,
		rnd:       rand.New(rand.NewSource(seed)),
		fracFail:  0.5,
		failAfter: -1,
	}
}

// SetFracFail sets the fraction of the buffer which will be trashed.
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability of a read failure.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes every read fail once n bytes have been read.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// Stats returns the number of calls to Read and bytes read so far.
func (r *Reader) Stats() (nCalled, nByte int) { return r.nCalled, r.nByte }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the last 30 % of a slice.
func trashSlice(p []byte, frac float32) int {
	nkeep := int(float32(len(p)) * (1. - frac))
	clear(p[nkeep:])
	return nkeep
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. On the first call, we might return zero data to
// simulate a zero length file.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	r.nCalled++
	if r.failAfter >= 0 && r.nByte >= r.failAfter {
		return 0, ErrBroken
	}
	n, err = r.rdrOrig.Read(p)
	r.nByte += n
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail), ErrBroken
	}
	return n, err
}

// Seek passes through to the original. The byte count is not reset, so
// a reader set to fail after n bytes stays broken.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.rdrOrig.Seek(offset, whence)
}

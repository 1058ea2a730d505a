// Package batch runs many independent invertibility-oracle queries over a
// worker pool, with progress reporting, gob checkpoint/resume, and JSON
// result I/O. Nothing here is part of the kernel: the kernel itself stays
// strictly single-threaded; this package only calls it many times
// concurrently from goroutines.
package batch

import (
	"encoding/gob"
	"os"

	"github.com/aytey/bvinvert/pkg/bv"
	"github.com/aytey/bvinvert/pkg/bvdomain"
	"github.com/aytey/bvinvert/pkg/invert"
)

// Query is one oracle invocation: decide whether op is invertible for x
// constrained to Domain, with side value S, target T, and position flag
// PosX.
type Query struct {
	Op     invert.Op
	Domain string // ternary domain string, parsed via bvdomain.NewFromChar
	S      uint64
	T      uint64
	Width  int
	PosX   int
}

// Result is the outcome of one Query.
type Result struct {
	Query     Query
	Oblivious bool
	Aware     bool
}

func (q Query) run() Result {
	d := bvdomain.NewFromChar(q.Domain)
	s := bv.FromUint64(q.S, q.Width)
	t := bv.FromUint64(q.T, invert.TWidth(q.Op, q.Width, q.Width))
	return Result{
		Query:     q,
		Oblivious: invert.Oblivious(q.Op, s, t, q.PosX),
		Aware:     invert.DomainAware(q.Op, d, s, t, q.PosX),
	}
}

// Checkpoint holds state for resuming a batch run.
type Checkpoint struct {
	Results   []Result
	Completed int // number of queries fully processed
}

func init() {
	gob.Register(Result{})
}

// SaveCheckpoint writes batch state to path.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads batch state from path.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}

package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Table stores the results accumulated from a batch run.
type Table struct {
	mu      sync.Mutex
	results []Result
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a result into the table.
func (t *Table) Add(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, r)
}

// Results returns a copy of all results, sorted by operator then width.
func (t *Table) Results() []Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Result, len(t.results))
	copy(out, t.results)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Query.Op != out[j].Query.Op {
			return out[i].Query.Op < out[j].Query.Op
		}
		return out[i].Query.Width < out[j].Query.Width
	})
	return out
}

// Len returns the number of accumulated results.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.results)
}

// WriteJSON writes the table's results to path as indented JSON.
func (t *Table) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Results())
}

// ReadQueriesJSONL reads one JSON-encoded Query per line from path. A line
// that fails to parse is logged to stderr and skipped rather than failing
// the whole read, since bad input on one line of a large batch file
// shouldn't discard every other line. Blank lines are ignored.
func ReadQueriesJSONL(path string) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var qs []Query
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var q Query
		if err := json.Unmarshal([]byte(line), &q); err != nil {
			fmt.Fprintf(os.Stderr, "batch: line %d: skipping malformed query: %v\n", lineNo, err)
			continue
		}
		qs = append(qs, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return qs, nil
}

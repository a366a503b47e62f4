// Package trace records a session's command/event traffic to a file for
// later inspection — useful when a controller misbehaves and the
// interaction needs to be replayed outside a live run.
package trace

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Direction distinguishes a frame this client sent from one it received.
type Direction string

const (
	DirectionOut Direction = "out"
	DirectionIn  Direction = "in"
)

// Record is one traced chunk of HCI traffic as handed to Trace, captured
// as hex so the trace file stays readable without a binary viewer.
type Record struct {
	Seq       int       `json:"seq"`
	Direction Direction `json:"direction"`
	Bytes     string    `json:"bytes"`
}

// Recorder appends Records to an in-memory log and can flush it to disk.
// It is safe for concurrent use since a Host's write path and read loop
// run on different goroutines.
type Recorder struct {
	mu      sync.Mutex
	records []Record
	seq     int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Trace appends one chunk of bytes to the log.
func (r *Recorder) Trace(dir Direction, frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.records = append(r.records, Record{
		Seq:       r.seq,
		Direction: dir,
		Bytes:     hex.EncodeToString(frame),
	})
}

// Records returns a snapshot of everything traced so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Save writes the trace log to filename as JSON.
func (r *Recorder) Save(filename string) error {
	r.mu.Lock()
	out, err := json.Marshal(r.records)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0644)
}

// Load reads a previously saved trace log.
func Load(filename string) ([]Record, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, err
	}
	in, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(in, &records); err != nil {
		return nil, err
	}
	return records, nil
}

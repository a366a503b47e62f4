package trace

import (
	"path/filepath"
	"testing"
)

func TestRecorderTraceAssignsSequence(t *testing.T) {
	r := NewRecorder()
	r.Trace(DirectionOut, []byte{0x01, 0x03, 0x0C, 0x00})
	r.Trace(DirectionIn, []byte{0x04, 0x0E, 0x04})

	records := r.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Seq != 1 || records[1].Seq != 2 {
		t.Fatalf("sequence numbers = %d, %d; want 1, 2", records[0].Seq, records[1].Seq)
	}
	if records[0].Direction != DirectionOut || records[1].Direction != DirectionIn {
		t.Fatal("directions were not preserved in order")
	}
	if records[0].Bytes != "01030c00" {
		t.Fatalf("Bytes = %q, want %q", records[0].Bytes, "01030c00")
	}
}

func TestRecorderSaveLoadRoundTrip(t *testing.T) {
	r := NewRecorder()
	r.Trace(DirectionOut, []byte{0x01, 0x03, 0x0C, 0x00})
	r.Trace(DirectionIn, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})

	path := filepath.Join(t.TempDir(), "trace.json")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save: %s", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	want := r.Records()
	if len(loaded) != len(want) {
		t.Fatalf("got %d loaded records, want %d", len(loaded), len(want))
	}
	for i := range want {
		if loaded[i] != want[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, loaded[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error loading a trace file that does not exist")
	}
}

func TestRecorderRecordsIsASnapshot(t *testing.T) {
	r := NewRecorder()
	r.Trace(DirectionOut, []byte{0xAA})
	snap := r.Records()
	r.Trace(DirectionOut, []byte{0xBB})
	if len(snap) != 1 {
		t.Fatalf("snapshot grew after a later Trace call: %d records", len(snap))
	}
}

package protein

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInfo_UnmarshalPreservesOrder(t *testing.T) {
	payload := []byte(`{"name":"Crambin","organism":"Crambe hispanica","resolution":0.54,"method":"X-ray"}`)

	info, err := ParseInfo(payload)
	if err != nil {
		t.Fatalf("parse info: %v", err)
	}

	var keys []string
	for _, entry := range info.Entries() {
		keys = append(keys, entry.Key)
	}
	want := []string{"name", "organism", "resolution", "method"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	value, ok := info.Get("resolution")
	if !ok {
		t.Fatal("expected resolution entry")
	}
	if num, ok := value.(json.Number); !ok || num.String() != "0.54" {
		t.Fatalf("expected json.Number 0.54, got %#v", value)
	}
}

func TestInfo_MarshalRoundTripKeepsOrder(t *testing.T) {
	info := NewInfo(
		Entry{Key: "name", Value: "Lysozyme"},
		Entry{Key: "source", Value: "RCSB PDB"},
		Entry{Key: "pdbId", Value: "1LYZ"},
	)

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal info: %v", err)
	}
	if want := `{"name":"Lysozyme","source":"RCSB PDB","pdbId":"1LYZ"}`; string(data) != want {
		t.Fatalf("marshal mismatch:\nwant %s\ngot  %s", want, data)
	}
}

func TestInfo_UnmarshalNull(t *testing.T) {
	var info Info
	if err := json.Unmarshal([]byte(`null`), &info); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !info.IsZero() {
		t.Fatalf("expected zero info, got %d entries", info.Len())
	}
}

func TestInfo_UnmarshalRejectsNonObject(t *testing.T) {
	var info Info
	if err := json.Unmarshal([]byte(`["not","a","record"]`), &info); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}

func TestInfo_Set(t *testing.T) {
	info := NewInfo(Entry{Key: "name", Value: "A"})
	info.Set("name", "B")
	info.Set("method", "NMR")

	entries := info.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Value != "B" || entries[1].Key != "method" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

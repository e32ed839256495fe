package graph

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAdjacencyMarshalOrdersKeysNumerically(t *testing.T) {
	a := Adjacency{10: {0}, 2: {10, 3}, 0: {}, 3: {}}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"0":[],"2":[10,3],"3":[],"10":[0]}`
	if string(data) != want {
		t.Errorf("marshaled %s, want %s", data, want)
	}
}

func TestAdjacencyMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Adjacency{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("marshaled %s, want {}", data)
	}
}

func TestAdjacencyRoundTrip(t *testing.T) {
	orig := Adjacency{0: {1, 2}, 1: {3}, 2: {3}, 3: {}}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Adjacency
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip = %v, want %v", got, orig)
	}
}

func TestAdjacencyUnmarshalRejectsNonNumericKey(t *testing.T) {
	var a Adjacency
	if err := json.Unmarshal([]byte(`{"x":[1]}`), &a); err == nil {
		t.Error("expected error for non-numeric key")
	}
}

func TestContextGraphEmpty(t *testing.T) {
	g := &ContextGraph{CFGSucc: Adjacency{}, DFGSucc: Adjacency{}}
	if !g.Empty() {
		t.Error("graph with no statements should be empty")
	}
}

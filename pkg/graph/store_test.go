package graph

import "testing"

func TestStoreInsertNodeInitializesAdjacency(t *testing.T) {
	s := NewStore()
	n := &Node{ID: 1, Properties: PropertyMap{"role": StringValue("Engineer")}}
	s.InsertNode(n)

	got, err := s.GetNode(1)
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if got.Properties["role"].S != "Engineer" {
		t.Errorf("property mismatch: got %v", got.Properties)
	}
	if len(s.Outgoing(1)) != 0 || len(s.Incoming(1)) != 0 {
		t.Error("expected empty adjacency sets for a fresh node")
	}
}

func TestStoreGetNodeSnapshotDoesNotAliasLiveState(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1, Properties: PropertyMap{"k": IntValue(1)}})

	got, _ := s.GetNode(1)
	got.Properties["k"] = IntValue(999)

	again, _ := s.GetNode(1)
	if again.Properties["k"].I != 1 {
		t.Error("mutating a returned snapshot must not affect the store")
	}
}

func TestStoreInsertEdgeWiresAdjacency(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1})
	s.InsertNode(&Node{ID: 2})
	s.InsertEdge(&Edge{ID: 10, From: 1, To: 2, Label: "knows"})

	out := s.Outgoing(1)
	in := s.Incoming(2)
	if len(out) != 1 || out[0] != 10 {
		t.Errorf("expected [10] outgoing from 1, got %v", out)
	}
	if len(in) != 1 || in[0] != 10 {
		t.Errorf("expected [10] incoming to 2, got %v", in)
	}
}

func TestStoreRemoveEdgeEntryClearsAdjacency(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1})
	s.InsertNode(&Node{ID: 2})
	e := &Edge{ID: 10, From: 1, To: 2, Label: "knows"}
	s.InsertEdge(e)
	s.RemoveEdgeEntry(e)

	if len(s.Outgoing(1)) != 0 || len(s.Incoming(2)) != 0 {
		t.Error("adjacency entries must be gone after RemoveEdgeEntry")
	}
	if _, err := s.GetEdge(10); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRemoveNodeEntryDropsAdjacencyBuckets(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1})
	s.RemoveNodeEntry(1)

	if _, err := s.GetNode(1); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	_, hasOut := s.outAdj[1]
	_, hasIn := s.inAdj[1]
	if hasOut || hasIn {
		t.Error("adjacency bucket for a removed node should be gone, not just empty")
	}
}

func TestStoreSelfLoopAdjacency(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1})
	s.InsertEdge(&Edge{ID: 5, From: 1, To: 1, Label: "self"})

	if len(s.Outgoing(1)) != 1 || len(s.Incoming(1)) != 1 {
		t.Error("self-loop must appear in both outgoing and incoming sets")
	}
}

func TestStoreReleaseEdgeIDsRoundTripDoesNotLeakPriorContents(t *testing.T) {
	s := NewStore()
	s.InsertNode(&Node{ID: 1})
	s.InsertNode(&Node{ID: 2})
	s.InsertEdge(&Edge{ID: 10, From: 1, To: 2, Label: "knows"})

	out := s.Outgoing(1)
	s.ReleaseEdgeIDs(out)

	again := s.Outgoing(1)
	if len(again) != 1 || again[0] != 10 {
		t.Errorf("Outgoing after a release must still report live adjacency, got %v", again)
	}

	s.ReleaseEdgeIDs(nil) // must not panic
}

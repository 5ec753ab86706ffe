package annotation

import (
	"fmt"
	"strconv"
)

// Snapshot is a detached copy of the whole store. It is also the format
// Replace accepts for wholesale imports.
type Snapshot struct {
	Reads               []ReadRecord `json:"readRecords"`
	Highlights          []Highlight  `json:"highlights"`
	Nodes               []GraphNode  `json:"nodes"`
	Edges               []GraphEdge  `json:"edges"`
	CurrentReadID       string       `json:"currentReadId"`
	DisplayedReads      []string     `json:"displayedReads"`
	SelectedHighlightID string       `json:"selectedHighlightId,omitempty"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Reads:               append(make([]ReadRecord, 0, len(s.reads)), s.reads...),
		Highlights:          copyHighlights(s.highlights),
		Nodes:               append(make([]GraphNode, 0, len(s.nodes)), s.nodes...),
		Edges:               append(make([]GraphEdge, 0, len(s.edges)), s.edges...),
		CurrentReadID:       s.currentReadID,
		DisplayedReads:      append(make([]string, 0, len(s.displayedReads)), s.displayedReads...),
		SelectedHighlightID: s.selectedHighlightID,
	}
}

// Replace swaps every collection for the snapshot's contents. Nothing is
// merged. The snapshot is validated first and the store is left untouched
// when it is inconsistent.
func (s *Store) Replace(snap Snapshot) error {
	if err := Validate(snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads = append([]ReadRecord(nil), snap.Reads...)
	s.highlights = copyHighlights(snap.Highlights)
	s.nodes = append([]GraphNode(nil), snap.Nodes...)
	s.edges = append([]GraphEdge(nil), snap.Edges...)
	s.gens = make(map[string]uint64, len(s.highlights))
	for _, h := range s.highlights {
		s.stampLocked(h.ID)
	}

	s.currentReadID = ""
	if s.readIndexLocked(snap.CurrentReadID) >= 0 {
		s.currentReadID = snap.CurrentReadID
	} else if len(s.reads) > 0 {
		s.currentReadID = s.reads[len(s.reads)-1].ID
	}

	s.displayedReads = nil
	for _, id := range snap.DisplayedReads {
		if s.readIndexLocked(id) >= 0 {
			s.showLocked(id)
		}
	}

	s.selectedHighlightID = ""
	if s.highlightIndexLocked(snap.SelectedHighlightID) >= 0 {
		s.selectedHighlightID = snap.SelectedHighlightID
	}

	s.epoch++
	return nil
}

// Validate checks the cross-collection invariants: read ids follow
// insertion order, every highlight id is "{read}-{seq}" of an existing
// read, highlights and nodes pair up one to one, and edges only reference
// live nodes.
func Validate(snap Snapshot) error {
	for i, r := range snap.Reads {
		if r.ID != strconv.Itoa(i) {
			return fmt.Errorf("%w: read at position %d has id %q", ErrInvalidSnapshot, i, r.ID)
		}
	}
	readExists := func(id string) bool {
		n, err := strconv.Atoi(id)
		return err == nil && n >= 0 && n < len(snap.Reads) && strconv.Itoa(n) == id
	}

	highlights := make(map[string]struct{}, len(snap.Highlights))
	for _, h := range snap.Highlights {
		if _, dup := highlights[h.ID]; dup {
			return fmt.Errorf("%w: duplicate highlight %s", ErrInvalidSnapshot, h.ID)
		}
		readID, _, ok := parseSeq(h.ID)
		if !ok || readID != h.ReadRecordID {
			return fmt.Errorf("%w: highlight %s does not belong to read %s", ErrInvalidSnapshot, h.ID, h.ReadRecordID)
		}
		if !readExists(h.ReadRecordID) {
			return fmt.Errorf("%w: highlight %s references unknown read %s", ErrInvalidSnapshot, h.ID, h.ReadRecordID)
		}
		highlights[h.ID] = struct{}{}
	}

	nodes := make(map[string]struct{}, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node %s", ErrInvalidSnapshot, n.ID)
		}
		if _, ok := highlights[n.ID]; !ok {
			return fmt.Errorf("%w: node %s has no highlight", ErrInvalidSnapshot, n.ID)
		}
		nodes[n.ID] = struct{}{}
	}
	if len(nodes) != len(highlights) {
		return fmt.Errorf("%w: %d highlights but %d nodes", ErrInvalidSnapshot, len(highlights), len(nodes))
	}

	edges := make(map[string]struct{}, len(snap.Edges))
	for _, e := range snap.Edges {
		if _, dup := edges[e.ID]; dup {
			return fmt.Errorf("%w: duplicate edge %s", ErrInvalidSnapshot, e.ID)
		}
		if _, ok := nodes[e.Source]; !ok {
			return fmt.Errorf("%w: edge %s source %s missing", ErrInvalidSnapshot, e.ID, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return fmt.Errorf("%w: edge %s target %s missing", ErrInvalidSnapshot, e.ID, e.Target)
		}
		edges[e.ID] = struct{}{}
	}

	return nil
}

// Package annotation keeps the highlights of a paper, their graph nodes,
// the edges between them and the read records mutually consistent.
//
// A Store is constructed once per reading session and handed to every
// consumer by reference. Consumers only ever get copies back; all mutation
// goes through Store methods.
package annotation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// generations hands out highlight stamps. It is shared by every Store in
// the process so a stamp never matches a highlight of a recreated store.
var generations atomic.Uint64

type Store struct {
	mu sync.RWMutex

	reads      []ReadRecord
	highlights []Highlight
	nodes      []GraphNode
	edges      []GraphEdge

	currentReadID       string
	selectedHighlightID string
	displayedReads      []string

	// epoch counts wipes and wholesale replaces.
	epoch uint64

	// gens maps each live highlight id to the stamp it got when it was
	// added or imported. Reused ids get a new stamp.
	gens map[string]uint64
}

func New() *Store {
	return &Store{gens: make(map[string]uint64)}
}

func (s *Store) stampLocked(id string) {
	if s.gens == nil {
		s.gens = make(map[string]uint64)
	}
	s.gens[id] = generations.Add(1)
}

// CreateRead registers a new read, makes it current and displays it.
func (s *Store) CreateRead(title, color string) (ReadRecord, error) {
	if strings.TrimSpace(title) == "" {
		return ReadRecord{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := ReadRecord{
		ID:    strconv.Itoa(len(s.reads)),
		Title: title,
		Color: color,
	}
	s.reads = append(s.reads, rec)
	s.currentReadID = rec.ID
	s.showLocked(rec.ID)

	return rec, nil
}

// SetCurrentRead switches the read new highlights are attached to. The
// sequence for that read is derived on demand, see NextSeq.
func (s *Store) SetCurrentRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readIndexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrReadNotFound, id)
	}
	s.currentReadID = id
	return nil
}

func (s *Store) ShowRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readIndexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrReadNotFound, id)
	}
	s.showLocked(id)
	return nil
}

func (s *Store) HideRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.displayedReads[:0]
	for _, d := range s.displayedReads {
		if d != id {
			kept = append(kept, d)
		}
	}
	s.displayedReads = kept
}

func (s *Store) showLocked(id string) {
	for _, d := range s.displayedReads {
		if d == id {
			return
		}
	}
	s.displayedReads = append(s.displayedReads, id)
}

// NextSeq returns the sequence number the next highlight of readID gets:
// one past the highest sequence still present for that read, or 0.
func (s *Store) NextSeq(readID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextSeqLocked(readID)
}

func (s *Store) nextSeqLocked(readID string) int {
	next := 0
	for _, h := range s.highlights {
		if h.ReadRecordID != readID {
			continue
		}
		if _, seq, ok := parseSeq(h.ID); ok && seq >= next {
			next = seq + 1
		}
	}
	return next
}

// AddHighlight attaches a viewer selection to the current read, creates
// its graph node and chains it to the previous highlight of the same read.
func (s *Store) AddHighlight(raw GhostHighlight) (Highlight, error) {
	if raw.Type != HighlightTypeText && raw.Type != HighlightTypeArea {
		return Highlight{}, fmt.Errorf("%w: %q", ErrInvalidHighlight, raw.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	readID := s.currentReadID
	readIdx := s.readIndexLocked(readID)
	if readIdx < 0 {
		return Highlight{}, ErrNoCurrentRead
	}

	prev := s.lastHighlightOfReadLocked(readID)
	id := highlightID(readID, s.nextSeqLocked(readID))

	h := Highlight{
		ID:           id,
		ReadRecordID: readID,
		Type:         raw.Type,
		Position:     copyPosition(raw.Position),
		Content:      raw.Content,
		Label:        Label(raw),
	}
	s.highlights = append(s.highlights, h)
	s.stampLocked(id)

	pos := Position{X: float64(readIdx * NodeOffsetX), Y: NodeOffsetY}
	if prev >= 0 {
		if n := s.nodeIndexLocked(s.highlights[prev].ID); n >= 0 {
			last := s.nodes[n].Position
			pos = Position{X: last.X, Y: last.Y + NodeOffsetY}
		}
	}
	s.nodes = append(s.nodes, GraphNode{
		ID:       id,
		Type:     NodeTypeHighlight,
		Position: pos,
		Data: NodeData{
			ID:           id,
			ReadRecordID: readID,
			Type:         raw.Type,
			Label:        h.Label,
			Content:      nodeContent(raw),
		},
	})

	if prev >= 0 {
		s.edges = append(s.edges, GraphEdge{
			ID:        id,
			Source:    s.highlights[prev].ID,
			Target:    id,
			Type:      EdgeTypeTemporal,
			MarkerEnd: MarkerArrow,
		})
	}

	return copyHighlight(h), nil
}

// UpdateHighlight merges a partial position and content into the
// highlight. It reports false when no highlight has that id.
func (s *Store) UpdateHighlight(id string, pos PositionPatch, content ContentPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.highlightIndexLocked(id)
	if i < 0 {
		return false
	}

	h := &s.highlights[i]
	if pos.BoundingRect != nil {
		h.Position.BoundingRect = *pos.BoundingRect
	}
	if pos.Rects != nil {
		h.Position.Rects = append([]Scaled(nil), pos.Rects...)
	}
	if pos.UsePdfCoordinates != nil {
		h.Position.UsePdfCoordinates = *pos.UsePdfCoordinates
	}
	if content.Text != nil {
		h.Content.Text = *content.Text
	}
	if content.Image != nil {
		h.Content.Image = *content.Image
	}
	return true
}

// DeleteHighlight removes the highlight, its node and every edge touching
// it, and clears the selection. Deleting an unknown id changes nothing.
func (s *Store) DeleteHighlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.highlightIndexLocked(id)
	if i < 0 {
		return false
	}
	s.highlights = append(s.highlights[:i], s.highlights[i+1:]...)
	delete(s.gens, id)

	if n := s.nodeIndexLocked(id); n >= 0 {
		s.nodes = append(s.nodes[:n], s.nodes[n+1:]...)
	}

	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.ID == id || e.Source == id || e.Target == id {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept

	s.selectedHighlightID = ""
	return true
}

// ResetHighlights wipes highlights, nodes, edges and the selection. Reads
// stay; every read's sequence starts over at 0.
func (s *Store) ResetHighlights() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlights = nil
	s.nodes = nil
	s.edges = nil
	s.gens = make(map[string]uint64)
	s.selectedHighlightID = ""
	s.epoch++
}

// OnConnect adds a relation edge drawn on the canvas. Self loops and
// cycles are allowed. Drawing the exact same connection twice yields the
// existing edge.
func (s *Store) OnConnect(c Connection) (GraphEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nodeIndexLocked(c.Source) < 0 {
		return GraphEdge{}, fmt.Errorf("%w: %s", ErrNodeNotFound, c.Source)
	}
	if s.nodeIndexLocked(c.Target) < 0 {
		return GraphEdge{}, fmt.Errorf("%w: %s", ErrNodeNotFound, c.Target)
	}

	for _, e := range s.edges {
		if e.Type == EdgeTypeRelation && e.Source == c.Source && e.Target == c.Target &&
			e.SourceHandle == c.SourceHandle && e.TargetHandle == c.TargetHandle {
			return e, nil
		}
	}

	e := GraphEdge{
		ID:           relationEdgeID(c),
		Source:       c.Source,
		Target:       c.Target,
		SourceHandle: c.SourceHandle,
		TargetHandle: c.TargetHandle,
		Type:         EdgeTypeRelation,
	}
	s.edges = append(s.edges, e)
	return e, nil
}

func relationEdgeID(c Connection) string {
	return "xy-edge__" + c.Source + c.SourceHandle + "-" + c.Target + c.TargetHandle
}

func (s *Store) SelectHighlight(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.highlightIndexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrHighlightNotFound, id)
	}
	s.selectedHighlightID = id
	return nil
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selectedHighlightID = ""
	s.mu.Unlock()
}

// UpdateNodeData saves node editor fields onto both the node and its
// highlight.
func (s *Store) UpdateNodeData(id string, patch NodeDataPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.nodeIndexLocked(id)
	h := s.highlightIndexLocked(id)
	if n < 0 || h < 0 {
		return false
	}

	data := &s.nodes[n].Data
	hl := &s.highlights[h]
	if patch.Label != nil {
		data.Label, hl.Label = *patch.Label, *patch.Label
	}
	if patch.Notes != nil {
		data.Notes, hl.Notes = *patch.Notes, *patch.Notes
	}
	if patch.Summary != nil {
		data.Summary, hl.Summary = *patch.Summary, *patch.Summary
	}
	return true
}

// MoveNode records where the canvas dropped a node.
func (s *Store) MoveNode(id string, pos Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.nodeIndexLocked(id)
	if n < 0 {
		return false
	}
	s.nodes[n].Position = pos
	return true
}

// SetSummary writes an asynchronously produced summary. gen is the stamp
// HighlightGeneration returned when the work was requested; the result is
// dropped when the highlight is gone or its id now names a newer highlight.
func (s *Store) SetSummary(id string, gen uint64, summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.gens[id]; !ok || gen == 0 || cur != gen {
		return false
	}
	h := s.highlightIndexLocked(id)
	n := s.nodeIndexLocked(id)
	if h < 0 || n < 0 {
		return false
	}
	s.highlights[h].Summary = summary
	s.nodes[n].Data.Summary = summary
	return true
}

func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Store) CurrentReadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentReadID
}

func (s *Store) SelectedHighlightID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedHighlightID
}

func (s *Store) DisplayedReads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]string, 0, len(s.displayedReads)), s.displayedReads...)
}

func (s *Store) IsDisplayed(readID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.displayedReads {
		if d == readID {
			return true
		}
	}
	return false
}

func (s *Store) Reads() []ReadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]ReadRecord, 0, len(s.reads)), s.reads...)
}

func (s *Store) Read(id string) (ReadRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.readIndexLocked(id); i >= 0 {
		return s.reads[i], true
	}
	return ReadRecord{}, false
}

func (s *Store) Highlights() []Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyHighlights(s.highlights)
}

func (s *Store) Highlight(id string) (Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.highlightIndexLocked(id); i >= 0 {
		return copyHighlight(s.highlights[i]), true
	}
	return Highlight{}, false
}

// HighlightGeneration returns the highlight together with its stamp, read
// under one lock.
func (s *Store) HighlightGeneration(id string) (Highlight, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.highlightIndexLocked(id); i >= 0 {
		return copyHighlight(s.highlights[i]), s.gens[id], true
	}
	return Highlight{}, 0, false
}

func (s *Store) Nodes() []GraphNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]GraphNode, 0, len(s.nodes)), s.nodes...)
}

func (s *Store) Node(id string) (GraphNode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.nodeIndexLocked(id); i >= 0 {
		return s.nodes[i], true
	}
	return GraphNode{}, false
}

func (s *Store) Edges() []GraphEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]GraphEdge, 0, len(s.edges)), s.edges...)
}

func (s *Store) readIndexLocked(id string) int {
	for i, r := range s.reads {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) highlightIndexLocked(id string) int {
	for i, h := range s.highlights {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nodeIndexLocked(id string) int {
	for i, n := range s.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) lastHighlightOfReadLocked(readID string) int {
	for i := len(s.highlights) - 1; i >= 0; i-- {
		if s.highlights[i].ReadRecordID == readID {
			return i
		}
	}
	return -1
}

func copyPosition(p ScaledPosition) ScaledPosition {
	if p.Rects != nil {
		p.Rects = append([]Scaled(nil), p.Rects...)
	}
	return p
}

func copyHighlight(h Highlight) Highlight {
	h.Position = copyPosition(h.Position)
	return h
}

func copyHighlights(in []Highlight) []Highlight {
	out := make([]Highlight, len(in))
	for i, h := range in {
		out[i] = copyHighlight(h)
	}
	return out
}

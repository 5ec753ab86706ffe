package annotation

type HighlightType string

const (
	HighlightTypeText HighlightType = "text"
	HighlightTypeArea HighlightType = "area"
)

const (
	NodeTypeHighlight = "highlight"

	EdgeTypeTemporal = "temporal"
	EdgeTypeRelation = "relation"

	MarkerArrow = "arrow"
)

// Layout offsets for freshly created nodes.
const (
	NodeOffsetX = 150
	NodeOffsetY = 150
)

// ReadRecord is one reading pass over the paper.
type ReadRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Scaled is a rectangle in viewer-relative coordinates.
type Scaled struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PageNumber int     `json:"pageNumber"`
}

type ScaledPosition struct {
	BoundingRect      Scaled   `json:"boundingRect"`
	Rects             []Scaled `json:"rects"`
	UsePdfCoordinates bool     `json:"usePdfCoordinates,omitempty"`
}

type Content struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// GhostHighlight is the raw selection emitted by the PDF viewer before it
// is attached to a read.
type GhostHighlight struct {
	Type     HighlightType  `json:"type"`
	Position ScaledPosition `json:"position"`
	Content  Content        `json:"content"`
}

type Highlight struct {
	ID           string         `json:"id"`
	ReadRecordID string         `json:"readRecordId"`
	Type         HighlightType  `json:"type"`
	Position     ScaledPosition `json:"position"`
	Content      Content        `json:"content"`
	Label        string         `json:"label"`
	Notes        string         `json:"notes"`
	Summary      string         `json:"summary"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the copy of highlight fields the graph canvas renders.
type NodeData struct {
	ID           string        `json:"id"`
	ReadRecordID string        `json:"readRecordId"`
	Type         HighlightType `json:"type"`
	Label        string        `json:"label"`
	Content      string        `json:"content"`
	Notes        string        `json:"notes"`
	Summary      string        `json:"summary"`
}

type GraphNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type GraphEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Type         string `json:"type"`
	MarkerEnd    string `json:"markerEnd,omitempty"`
}

// Connection is a user-drawn link between two node handles.
type Connection struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// PositionPatch carries a partial ScaledPosition. Nil fields keep the
// current value.
type PositionPatch struct {
	BoundingRect      *Scaled  `json:"boundingRect,omitempty"`
	Rects             []Scaled `json:"rects,omitempty"`
	UsePdfCoordinates *bool    `json:"usePdfCoordinates,omitempty"`
}

type ContentPatch struct {
	Text  *string `json:"text,omitempty"`
	Image *string `json:"image,omitempty"`
}

// NodeDataPatch is what the node editor saves.
type NodeDataPatch struct {
	Label   *string `json:"label,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Summary *string `json:"summary,omitempty"`
}

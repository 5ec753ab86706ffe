package implementation

import (
	"context"
	"testing"
	"time"

	"re-ad-be/internal/entity"
	"re-ad-be/internal/model"
	"re-ad-be/internal/repository/specification"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Workspace{},
		&model.ReadRecord{},
		&model.Highlight{},
		&model.GraphNode{},
		&model.GraphEdge{},
	))
	return db
}

func sampleSnapshot() annotation.Snapshot {
	pos := annotation.ScaledPosition{
		BoundingRect: annotation.Scaled{X1: 1, Y1: 2, X2: 3, Y2: 4, Width: 10, Height: 20, PageNumber: 2},
		Rects:        []annotation.Scaled{{X1: 1, Y1: 2, X2: 3, Y2: 4, Width: 10, Height: 20, PageNumber: 2}},
	}
	return annotation.Snapshot{
		Reads: []annotation.ReadRecord{{ID: "0", Title: "Skim", Color: "#ff0000"}},
		Highlights: []annotation.Highlight{
			{ID: "0-0", ReadRecordID: "0", Type: annotation.HighlightTypeText, Position: pos, Content: annotation.Content{Text: "a"}, Label: "a"},
			{ID: "0-1", ReadRecordID: "0", Type: annotation.HighlightTypeText, Position: pos, Content: annotation.Content{Text: "b"}, Label: "b", Summary: "sum"},
		},
		Nodes: []annotation.GraphNode{
			{ID: "0-0", Type: annotation.NodeTypeHighlight, Position: annotation.Position{X: 0, Y: 150}, Data: annotation.NodeData{ID: "0-0", ReadRecordID: "0", Label: "a"}},
			{ID: "0-1", Type: annotation.NodeTypeHighlight, Position: annotation.Position{X: 0, Y: 300}, Data: annotation.NodeData{ID: "0-1", ReadRecordID: "0", Label: "b"}},
		},
		Edges: []annotation.GraphEdge{
			{ID: "0-1", Source: "0-0", Target: "0-1", Type: annotation.EdgeTypeTemporal, MarkerEnd: annotation.MarkerArrow},
		},
		CurrentReadID:       "0",
		DisplayedReads:      []string{"0"},
		SelectedHighlightID: "0-1",
	}
}

func TestWorkspaceRepository_SaveAndFindWithGraph(t *testing.T) {
	repo := NewWorkspaceRepository(openTestDB(t))
	ctx := context.Background()
	userId := uuid.New()

	ws := &entity.Workspace{
		Id:        uuid.New(),
		UserId:    userId,
		Snapshot:  sampleSnapshot(),
		Paper:     &entity.Paper{Name: "p.pdf", DataURI: "data:application/pdf;base64,AA==", Size: 1, UploadedAt: time.Now()},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(ctx, ws))

	got, err := repo.FindOne(ctx, specification.WorkspaceOwnedByUser{UserID: userId}, specification.WithGraph{})
	require.NoError(t, err)
	require.NotNil(t, got)

	want := sampleSnapshot()
	assert.Equal(t, want.Reads, got.Snapshot.Reads)
	assert.Equal(t, want.Highlights, got.Snapshot.Highlights)
	assert.Equal(t, want.Edges, got.Snapshot.Edges)
	assert.Equal(t, want.DisplayedReads, got.Snapshot.DisplayedReads)
	assert.Equal(t, "0-1", got.Snapshot.SelectedHighlightID)
	require.Len(t, got.Snapshot.Nodes, 2)
	assert.Equal(t, 300.0, got.Snapshot.Nodes[1].Position.Y)
	require.NotNil(t, got.Paper)
	assert.Equal(t, "p.pdf", got.Paper.Name)
}

func TestWorkspaceRepository_SaveReplacesChildren(t *testing.T) {
	db := openTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	ws := &entity.Workspace{Id: uuid.New(), UserId: uuid.New(), Snapshot: sampleSnapshot(), CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, ws))

	ws.Snapshot.Highlights = ws.Snapshot.Highlights[:1]
	ws.Snapshot.Nodes = ws.Snapshot.Nodes[:1]
	ws.Snapshot.Edges = nil
	ws.Snapshot.SelectedHighlightID = ""
	require.NoError(t, repo.Save(ctx, ws))

	var highlights, edges int64
	db.Model(&model.Highlight{}).Count(&highlights)
	db.Model(&model.GraphEdge{}).Count(&edges)
	assert.Equal(t, int64(1), highlights)
	assert.Equal(t, int64(0), edges)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWorkspaceRepository_FindOneMissingReturnsNil(t *testing.T) {
	repo := NewWorkspaceRepository(openTestDB(t))

	got, err := repo.FindOne(context.Background(), specification.WorkspaceOwnedByUser{UserID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWorkspaceRepository_DeleteHidesWorkspace(t *testing.T) {
	repo := NewWorkspaceRepository(openTestDB(t))
	ctx := context.Background()
	userId := uuid.New()

	ws := &entity.Workspace{Id: uuid.New(), UserId: userId, Snapshot: sampleSnapshot(), CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, ws))
	require.NoError(t, repo.Delete(ctx, specification.ByID{ID: ws.Id}))

	got, err := repo.FindOne(ctx, specification.WorkspaceOwnedByUser{UserID: userId})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWorkspaceRepository_DeleteOnlyMatchingWorkspace(t *testing.T) {
	repo := NewWorkspaceRepository(openTestDB(t))
	ctx := context.Background()

	kept := &entity.Workspace{Id: uuid.New(), UserId: uuid.New(), Snapshot: sampleSnapshot(), CreatedAt: time.Now()}
	gone := &entity.Workspace{Id: uuid.New(), UserId: uuid.New(), Snapshot: sampleSnapshot(), CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, kept))
	require.NoError(t, repo.Save(ctx, gone))

	assert.ErrorIs(t, repo.Delete(ctx), gorm.ErrMissingWhereClause)
	require.NoError(t, repo.Delete(ctx, specification.ByID{ID: gone.Id}))

	got, err := repo.FindOne(ctx, specification.ByID{ID: kept.Id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, kept.UserId, got.UserId)

	got, err = repo.FindOne(ctx, specification.ByID{ID: gone.Id})
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := repo.Count(ctx, specification.IncludeDeleted{}, specification.ByID{ID: gone.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

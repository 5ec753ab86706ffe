package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"re-ad-be/internal/bootstrap"
	"re-ad-be/internal/config"
	"re-ad-be/internal/model"
	"re-ad-be/internal/server"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "integration-secret"

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:        "0",
			Environment: "test",
			LogFilePath: filepath.Join(t.TempDir(), "app.log"),
		},
		Database:  config.DatabaseConfig{Driver: database.DriverSQLite, Connection: ":memory:"},
		Auth:      config.AuthConfig{JwtSecret: jwtSecret},
		Workspace: config.WorkspaceConfig{TTL: time.Hour, MaxUploadMB: 5},
		Summary:   config.SummaryConfig{TopicName: "SUMMARIZE_HIGHLIGHT"},
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Workspace{},
		&model.ReadRecord{},
		&model.Highlight{},
		&model.GraphNode{},
		&model.GraphEdge{},
	))

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)

	return server.New(cfg, container).GetApp()
}

func newClient(t *testing.T, app *fiber.App, userID uuid.UUID) *testClient {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return &testClient{t: t, app: app, token: token}
}

func (c *testClient) do(method, path string, body interface{}) (int, envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.send(req)
}

func (c *testClient) send(req *http.Request) (int, envelope) {
	c.t.Helper()

	resp, err := c.app.Test(req, 5000)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func textHighlight(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "text",
		"position": map[string]interface{}{
			"boundingRect": map[string]interface{}{"x1": 1, "y1": 2, "x2": 3, "y2": 4, "width": 100, "height": 200, "pageNumber": 1},
			"rects":        []interface{}{},
		},
		"content": map[string]interface{}{"text": text},
	}
}

func TestRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/read/v1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAnnotationFlow(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app, uuid.New())

	// Highlighting before any read exists is rejected.
	status, env := c.do("POST", "/api/highlight/v1", textHighlight("too early"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, env.Success)

	status, _ = c.do("POST", "/api/read/v1", map[string]string{"title": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = c.do("POST", "/api/read/v1", map[string]string{"title": "First pass", "color": "#ff0000"})
	require.Equal(t, fiber.StatusOK, status)
	read := decode[annotation.ReadRecord](t, env.Data)
	assert.Equal(t, "0", read.ID)

	status, env = c.do("POST", "/api/highlight/v1", textHighlight("Attention is all you need"))
	require.Equal(t, fiber.StatusOK, status)
	first := decode[annotation.Highlight](t, env.Data)
	assert.Equal(t, "0-0", first.ID)
	assert.Equal(t, "Attention is all you need", first.Label)

	status, env = c.do("POST", "/api/highlight/v1", textHighlight("Multi-head attention"))
	require.Equal(t, fiber.StatusOK, status)
	second := decode[annotation.Highlight](t, env.Data)
	assert.Equal(t, "0-1", second.ID)

	status, env = c.do("GET", "/api/graph/v1", nil)
	require.Equal(t, fiber.StatusOK, status)
	graph := decode[struct {
		Nodes []annotation.GraphNode `json:"nodes"`
		Edges []annotation.GraphEdge `json:"edges"`
	}](t, env.Data)
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, annotation.EdgeTypeTemporal, graph.Edges[0].Type)
	assert.Equal(t, graph.Nodes[0].Position.Y+annotation.NodeOffsetY, graph.Nodes[1].Position.Y)

	status, _ = c.do("PUT", "/api/graph/v1/node/0-1/position", map[string]float64{"x": 10, "y": 20})
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = c.do("PUT", "/api/graph/v1/node/nope/position", map[string]float64{"x": 10, "y": 20})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = c.do("DELETE", "/api/highlight/v1/0-0", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":"0-0","deleted":true}`, string(env.Data))

	status, env = c.do("DELETE", "/api/highlight/v1/0-0", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":"0-0","deleted":false}`, string(env.Data))

	// an edit has nothing to return for a missing highlight
	patch := map[string]map[string]string{"content": {"text": "late edit"}}
	status, _ = c.do("PATCH", "/api/highlight/v1/0-0", patch)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, env = c.do("PATCH", "/api/highlight/v1/0-1", patch)
	require.Equal(t, fiber.StatusOK, status)
	edited := decode[annotation.Highlight](t, env.Data)
	assert.Equal(t, "late edit", edited.Content.Text)

	status, _ = c.do("PUT", "/api/read/v1/9/show", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = c.do("PUT", "/api/read/v1/0/hide", nil)
	require.Equal(t, fiber.StatusOK, status)
	reads := decode[struct {
		DisplayedReads []string `json:"displayed_reads"`
	}](t, env.Data)
	assert.Empty(t, reads.DisplayedReads)
}

func TestWorkspaceSaveAndLoad(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	c := newClient(t, app, userID)

	status, _ := c.do("POST", "/api/workspace/v1/load", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	c.do("POST", "/api/read/v1", map[string]string{"title": "Skim", "color": "#00ff00"})
	c.do("POST", "/api/highlight/v1", textHighlight("one"))
	c.do("POST", "/api/highlight/v1", textHighlight("two"))

	status, env := c.do("POST", "/api/workspace/v1/save", nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	saved := decode[struct {
		Id         uuid.UUID `json:"id"`
		Highlights int       `json:"highlights"`
		Edges      int       `json:"edges"`
	}](t, env.Data)
	assert.Equal(t, 2, saved.Highlights)
	assert.Equal(t, 1, saved.Edges)

	// Saving again keeps the same row.
	status, env = c.do("POST", "/api/workspace/v1/save", nil)
	require.Equal(t, fiber.StatusOK, status)
	again := decode[struct {
		Id uuid.UUID `json:"id"`
	}](t, env.Data)
	assert.Equal(t, saved.Id, again.Id)

	c.do("DELETE", "/api/highlight/v1", nil)
	status, env = c.do("GET", "/api/highlight/v1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[[]annotation.Highlight](t, env.Data))

	status, env = c.do("POST", "/api/workspace/v1/load", nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	snap := decode[annotation.Snapshot](t, env.Data)
	require.Len(t, snap.Highlights, 2)
	assert.Equal(t, "0-0", snap.Highlights[0].ID)
	assert.Equal(t, "0-1", snap.Highlights[1].ID)
	assert.Len(t, snap.Edges, 1)
	assert.Equal(t, "0", snap.CurrentReadID)

	status, _ = c.do("DELETE", "/api/workspace/v1/save", nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = c.do("POST", "/api/workspace/v1/load", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWorkspaceImportRejectsInvalidSnapshot(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app, uuid.New())

	status, _ := c.do("PUT", "/api/workspace/v1", map[string]interface{}{
		"readRecords":    []interface{}{},
		"highlights":     []interface{}{map[string]interface{}{"id": "0-0", "readRecordId": "missing", "type": "text"}},
		"nodes":          []interface{}{},
		"edges":          []interface{}{},
		"currentReadId":  "",
		"displayedReads": []interface{}{},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func uploadRequest(t *testing.T, token, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/paper/v1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestPaperUpload(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app, uuid.New())

	status, _ := c.do("GET", "/api/paper/v1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env := c.send(uploadRequest(t, c.token, "notes.txt", "text/plain", []byte("hello")))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please upload a valid PDF file.", env.Message)

	status, _ = c.send(uploadRequest(t, c.token, "paper.pdf", "application/pdf", []byte("%PDF-1.4")))
	require.Equal(t, fiber.StatusOK, status)

	status, env = c.do("GET", "/api/paper/v1", nil)
	require.Equal(t, fiber.StatusOK, status)
	paper := decode[struct {
		Name    string `json:"name"`
		Size    int64  `json:"size"`
		DataUri string `json:"data_uri"`
	}](t, env.Data)
	assert.Equal(t, "paper.pdf", paper.Name)
	assert.Equal(t, int64(8), paper.Size)
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", paper.DataUri)
}

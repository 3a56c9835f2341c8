package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"five_in_row/internal/domain"
	"five_in_row/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	boards := service.NewBoardService(service.BoardServiceConfig{MaxCells: 5000}, nil)
	t.Cleanup(boards.Stop)
	h := NewHandler(boards, "test")

	r := gin.New()
	r.GET("/health", h.Health)
	r.POST("/boards", h.CreateBoard)
	r.GET("/boards/:id", h.GetBoard)
	r.DELETE("/boards/:id", h.DeleteBoard)
	r.POST("/boards/:id/moves", h.PlaceStone)
	r.DELETE("/boards/:id/moves", h.ClearStone)
	r.GET("/boards/:id/sequences", h.Sequences)
	r.GET("/boards/:id/frontier", h.Frontier)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBoard(t *testing.T, r http.Handler, maxX, maxY int) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/boards", gin.H{"min_x": 0, "max_x": maxX, "min_y": 0, "max_y": maxY})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var info domain.BoardInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	return info.ID
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, w.Body.String())
}

func TestCreateBoardValidation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/boards", gin.H{"min_x": 0, "max_x": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/boards", gin.H{"min_x": 5, "max_x": 0, "min_y": 0, "max_y": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/boards", gin.H{"min_x": 0, "max_x": 999, "min_y": 0, "max_y": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveLifecycle(t *testing.T) {
	r := newTestRouter(t)
	id := createBoard(t, r, 20, 10)

	for x := 10; x <= 14; x++ {
		w := do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": x, "y": 5, "owner": "x"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": 11, "y": 6, "owner": "x"})
	require.Equal(t, http.StatusOK, w.Code)

	var conf domain.MoveConfirmation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conf))
	assert.Equal(t, int64(6), conf.Version)
	assert.Equal(t, 6, conf.Stones)

	w = do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": 11, "y": 6, "owner": "o"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": 21, "y": 6, "owner": "o"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": 1, "y": 1, "owner": "q"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/boards/"+id+"/sequences?owner=x", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Owner     string                `json:"owner"`
		Sequences []domain.SequenceView `json:"sequences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "x", resp.Owner)
	require.Len(t, resp.Sequences, 18)
	assert.Equal(t, "right", resp.Sequences[0].Direction)
	assert.Equal(t, 5, resp.Sequences[0].Length)
	assert.True(t, resp.Sequences[0].Closed)
	assert.Equal(t, "up_right", resp.Sequences[17].Direction)

	w = do(t, r, http.MethodDelete, "/boards/"+id+"/moves?x=11&y=6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/boards/"+id+"/moves?x=a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/boards/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info domain.BoardInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Len(t, info.Stones, 5)
	assert.Equal(t, 21, info.Width)
}

func TestSequencesRequiresOwner(t *testing.T) {
	r := newTestRouter(t)
	id := createBoard(t, r, 3, 3)

	w := do(t, r, http.MethodGet, "/boards/"+id+"/sequences", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFrontier(t *testing.T) {
	r := newTestRouter(t)
	id := createBoard(t, r, 2, 2)

	w := do(t, r, http.MethodPost, "/boards/"+id+"/moves", gin.H{"x": 0, "y": 0, "owner": "o"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/boards/"+id+"/frontier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fields":[{"x":1,"y":0},{"x":0,"y":1},{"x":1,"y":1}]}`, w.Body.String())
}

func TestDeleteBoard(t *testing.T) {
	r := newTestRouter(t)
	id := createBoard(t, r, 2, 2)

	w := do(t, r, http.MethodDelete, "/boards/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/boards/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/boards/"+id+"/frontier", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

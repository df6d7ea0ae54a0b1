package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/export"
	"github.com/homekeep-labs/homekeeper/internal/extract"
	"github.com/homekeep-labs/homekeeper/internal/match"
)

// fakeItemRepo is an in-memory ItemRepository for handler tests.
type fakeItemRepo struct {
	items map[uuid.UUID]entity.InventoryItem
	order []uuid.UUID
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]entity.InventoryItem{}}
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = *item
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}
	return &item, nil
}

func (f *fakeItemRepo) List(_ context.Context) ([]entity.InventoryItem, error) {
	out := make([]entity.InventoryItem, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return common.NewAppError("ITEM_NOT_FOUND", "item not found", common.ErrNotFound)
	}
	delete(f.items, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func testRouter(repo *fakeItemRepo) *gin.Engine {
	recognizer := extract.RecognizerFunc(func(ctx context.Context, imageURI string) (extract.Recognition, error) {
		return extract.Recognition{
			Text:       "THE HOME DEPOT\n11/12/2025\nKitchenAid Stand Mixer $394.39\nTotal: $394.39",
			Confidence: 92,
		}, nil
	})
	pipeline := extract.NewPipeline(recognizer, extract.Config{}, nil)
	matcher := match.NewMatcher(match.Config{}, nil)
	exportSvc := export.NewService(repo, nil)
	handler := NewHandler(pipeline, matcher, repo, exportSvc, nil)
	return SetupRouter(common.ServerConfig{}, handler, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doJSON(t, testRouter(newFakeItemRepo()), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestExtractEndpoint(t *testing.T) {
	router := testRouter(newFakeItemRepo())

	w := doJSON(t, router, http.MethodPost, "/v1/receipts/extract", gin.H{"image_uri": "file:///tmp/r.jpg"})
	require.Equal(t, http.StatusOK, w.Code)

	var res entity.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Failed())
	require.NotNil(t, res.PurchasePrice)
	assert.Equal(t, "394.39", *res.PurchasePrice)
	require.NotNil(t, res.StoreName)
	assert.Contains(t, *res.StoreName, "HOME DEPOT")
}

func TestExtractEndpoint_MissingBody(t *testing.T) {
	w := doJSON(t, testRouter(newFakeItemRepo()), http.MethodPost, "/v1/receipts/extract", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractTextEndpoint(t *testing.T) {
	router := testRouter(newFakeItemRepo())

	w := doJSON(t, router, http.MethodPost, "/v1/receipts/extract-text", gin.H{
		"text":       "Date: 11/12/2025\nTotal: $10.00",
		"confidence": 80,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res entity.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 80, res.Confidence)
	require.NotNil(t, res.PurchasePrice)
	assert.Equal(t, "10.00", *res.PurchasePrice)
}

func TestExtractTextEndpoint_ConfidenceOutOfRange(t *testing.T) {
	w := doJSON(t, testRouter(newFakeItemRepo()), http.MethodPost, "/v1/receipts/extract-text", gin.H{
		"text":       "anything",
		"confidence": 200,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchEndpoint(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(context.Background(), &entity.InventoryItem{Name: "KitchenAid Stand Mixer"}))
	router := testRouter(repo)

	t.Run("match found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/v1/inventory/match", gin.H{"query": "kitchenaid stand mixer"})
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Match *entity.MatchResult `json:"match"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotNil(t, res.Match)
		assert.Equal(t, "KitchenAid Stand Mixer", res.Match.Item.Name)
	})

	t.Run("no match", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/v1/inventory/match", gin.H{"query": "garden hose"})
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Match *entity.MatchResult `json:"match"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Nil(t, res.Match)
	})
}

func TestItemCRUD(t *testing.T) {
	router := testRouter(newFakeItemRepo())

	// Create
	w := doJSON(t, router, http.MethodPost, "/v1/inventory/items", gin.H{"name": "Dyson V15 Vacuum"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, created.WarrantyYears)

	// Get
	w = doJSON(t, router, http.MethodGet, "/v1/inventory/items/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Update
	w = doJSON(t, router, http.MethodPut, "/v1/inventory/items/"+created.ID.String(), gin.H{
		"name":           "Dyson V15 Detect",
		"warranty_years": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// List
	w = doJSON(t, router, http.MethodGet, "/v1/inventory/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dyson V15 Detect")

	// Delete
	w = doJSON(t, router, http.MethodDelete, "/v1/inventory/items/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/inventory/items/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemEndpoints_BadID(t *testing.T) {
	w := doJSON(t, testRouter(newFakeItemRepo()), http.MethodGet, "/v1/inventory/items/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	repo := newFakeItemRepo()
	require.NoError(t, repo.Create(context.Background(), &entity.InventoryItem{Name: "Stand Mixer"}))
	router := testRouter(repo)

	w := doJSON(t, router, http.MethodGet, "/v1/inventory/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestExportEndpoint_BadDateParam(t *testing.T) {
	w := doJSON(t, testRouter(newFakeItemRepo()), http.MethodGet, "/v1/inventory/export?from=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

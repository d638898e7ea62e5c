package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apprecv "github.com/erp/warehouse-bot/internal/application/receiving"
	"github.com/erp/warehouse-bot/internal/domain/catalog"
	"github.com/erp/warehouse-bot/internal/domain/identity"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/erp/warehouse-bot/internal/infrastructure/cache"
	"github.com/erp/warehouse-bot/internal/infrastructure/session"
	"github.com/erp/warehouse-bot/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepo serves canned users keyed by chat ID.
type fakeUserRepo struct {
	users map[int64]*identity.User
}

func (r *fakeUserRepo) FindByChatID(_ context.Context, chatID int64) (*identity.User, error) {
	user, ok := r.users[chatID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

// fakeCatalogReader serves one supplier with two items.
type fakeCatalogReader struct {
	suppliers []catalog.Supplier
	items     map[uuid.UUID][]catalog.Item
}

func (r *fakeCatalogReader) ListSuppliers(_ context.Context) ([]catalog.Supplier, error) {
	return r.suppliers, nil
}

func (r *fakeCatalogReader) ListItemsForSupplier(_ context.Context, supplierID uuid.UUID) ([]catalog.Item, error) {
	return r.items[supplierID], nil
}

// newReceivingRouter wires a ReceivingHandler with in-memory collaborators.
func newReceivingRouter(t *testing.T) *gin.Engine {
	t.Helper()

	supplier := catalog.Supplier{BaseEntity: shared.NewBaseEntity(), Name: "Acme Foods"}
	flour := catalog.Item{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplier.ID,
		Name:         "Flour",
		DefaultPrice: decimal.NewFromFloat(2.5),
	}

	reader := &fakeCatalogReader{
		suppliers: []catalog.Supplier{supplier},
		items:     map[uuid.UUID][]catalog.Item{supplier.ID: {flour}},
	}

	manager, err := identity.NewUser(42, identity.RoleWarehouseManager, "Alex")
	require.NoError(t, err)
	sales, err := identity.NewUser(7, identity.RoleSalesManager, "Kim")
	require.NoError(t, err)
	users := &fakeUserRepo{users: map[int64]*identity.User{42: manager, 7: sales}}

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })

	ledger := apprecv.NewLedgerService(apprecv.NewNoOpTransactionScope(nil, nil, nil), zap.NewNop())
	workflow := apprecv.NewWorkflowService(reader, session.NewInMemoryStore(), ledger, idempotency, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewReceivingHandler(workflow, users, zap.NewNop()).RegisterRoutes(api)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestReceivingHandlerStart(t *testing.T) {
	t.Run("starts a workflow for a warehouse manager", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 42}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, string(apprecv.PromptSelection), data["kind"])
	})

	t.Run("rejects unknown chat ids", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 999}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
	})

	t.Run("rejects roles that cannot receive goods", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 7}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects missing chat_id", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/start", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

func TestReceivingHandlerSelection(t *testing.T) {
	t.Run("picking a supplier returns its items", func(t *testing.T) {
		engine := newReceivingRouter(t)
		postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 42}`)

		w := postJSON(engine, "/api/v1/receiving/selection", `{"chat_id": 42, "text": "Acme Foods"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"Flour"}, data["options"])
	})

	t.Run("without a session returns an informational prompt", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/selection", `{"chat_id": 42, "text": "Acme Foods"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, string(apprecv.PromptInfo), data["kind"])
	})

	t.Run("rejects missing text", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/selection", `{"chat_id": 42}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReceivingHandlerAction(t *testing.T) {
	t.Run("stale action re-issues the current prompt", func(t *testing.T) {
		engine := newReceivingRouter(t)
		postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 42}`)

		w := postJSON(engine, "/api/v1/receiving/action", `{"chat_id": 42, "action": "confirm_quantity"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing action", func(t *testing.T) {
		engine := newReceivingRouter(t)

		w := postJSON(engine, "/api/v1/receiving/action", `{"chat_id": 42}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReceivingHandlerCancel(t *testing.T) {
	engine := newReceivingRouter(t)
	postJSON(engine, "/api/v1/receiving/start", `{"chat_id": 42}`)

	w := postJSON(engine, "/api/v1/receiving/cancel", `{"chat_id": 42}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(apprecv.PromptInfo), data["kind"])

	// A later selection finds no session.
	w = postJSON(engine, "/api/v1/receiving/selection", `{"chat_id": 42, "text": "Acme Foods"}`)
	resp = decodeResponse(t, w)
	data, ok = resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(apprecv.PromptInfo), data["kind"])
}

func TestReceivingHandlerSystemInfo(t *testing.T) {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler(nil).RegisterRoutes(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/system/info", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/system/health", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

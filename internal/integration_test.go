package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"milling-shop-backend/config"
	"milling-shop-backend/internal/api"
	"milling-shop-backend/internal/db"
	"milling-shop-backend/internal/export"
	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/store"
)

// TestBlockLifecycle follows a block from new stock through two milling runs
// to its removal, then checks the history and the spreadsheet export.
func TestBlockLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:lifecycle?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, log)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	router := api.NewRouter(store.NewGormStore(gormDB, log), config.ServerConfig{
		RateLimitPerSec: 100,
		RateLimitBurst:  100,
		CacheTTL:        time.Minute,
	}, log)

	call := func(method, path string, body any) *httptest.ResponseRecorder {
		var raw []byte
		if body != nil {
			raw, err = json.Marshal(body)
			require.NoError(t, err)
		}
		req := httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// 1. Stock two new blocks.
	w := call(http.MethodPost, "/api/blocks", map[string]any{"material": "Zirconia", "brand": "Aidite", "shade": "A3", "thickness": 18, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var stock model.Block
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stock))

	// 2. Scan codes and mill the first batch from new stock.
	for _, code := range []string{"L-1", "L-2"} {
		require.Equal(t, http.StatusCreated, call(http.MethodPost, "/api/pending", map[string]any{"order_code": code}).Code)
	}
	w = call(http.MethodPost, "/api/orders/reconcile", map[string]any{"codes": []string{"L-1", "L-2"}, "new_block_id": stock.ID, "machine": "B", "model_count": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first store.ReconcileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, []int{3, 2}, first.Counts)
	assert.False(t, first.SourceExhausted)
	require.NotNil(t, first.Block.Barcode)
	assert.Regexp(t, `^18[A-Z0-9]{4}$`, *first.Block.Barcode)

	w = call(http.MethodGet, fmt.Sprintf("/api/blocks/%d", stock.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":1`)

	// 3. Mill a second batch from the same used block.
	require.Equal(t, http.StatusCreated, call(http.MethodPost, "/api/pending", map[string]any{"order_code": "L-3"}).Code)
	w = call(http.MethodPost, "/api/orders/reconcile", map[string]any{"codes": []string{"L-3"}, "used_block_id": first.Block.ID, "machine": "B", "model_count": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var second store.ReconcileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.Block.ID, second.Block.ID)
	assert.Equal(t, 9, second.Block.FresedModelCount)
	assert.Equal(t, model.CodeList{"L-1", "L-2", "L-3"}, second.Block.FresedOrderCodes)
	assert.Equal(t, *first.Block.Barcode, second.Orders[0].Barcode)

	// 4. Retire the used block.
	w = call(http.MethodDelete, fmt.Sprintf("/api/blocks/%d", first.Block.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, fmt.Sprintf("/api/blocks/%d", first.Block.ID), nil).Code)

	w = call(http.MethodGet, "/api/block-history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []model.BlockHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, first.Block.ID, history[0].BlockID)
	assert.Equal(t, 9, history[0].FresedModelCount)
	assert.Equal(t, "Aidite", history[0].Brand)

	// 5. Export everything.
	w = call(http.MethodGet, "/api/export?full=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, export.Tables, f.GetSheetList())

	orders, err := f.GetRows(export.TableOrders)
	require.NoError(t, err)
	assert.Len(t, orders, 4, "header plus three orders")
	pending, err := f.GetRows(export.TablePendingOrders)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "queue drained")

	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, "error", entry.Level.String(), entry.Message)
	}
}

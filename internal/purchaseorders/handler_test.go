package purchaseorders

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/bluething/boostpo/internal/platform/httpx"
	"github.com/bluething/boostpo/internal/timezone"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Service) {
	t.Helper()
	svc, _, _ := newTestOrderService()
	handler := NewHandler(slog.New(slog.DiscardHandler), svc, timezone.MustLoad(timezone.DefaultZone))
	router := chi.NewRouter()
	router.Route("/api/v1/purchase-orders", handler.MountRoutes)
	return router, svc
}

func postOrder(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":"2024-03-15T10:30:00","details":[{"itemId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(300), resp.TotalPrice)
	require.Equal(t, int64(240), resp.TotalCost)
	require.Equal(t, "2024-03-15T10:30:00", resp.Datetime)
	require.Len(t, resp.Details, 1)
	require.Equal(t, "Widget", resp.Details[0].ItemName)
}

func TestCreateOrderUnknownItemReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":"2024-03-15T10:30:00","details":[{"itemId":99,"quantity":1}]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, http.StatusNotFound, envelope.Status)
	require.Contains(t, envelope.Message, "99")
	require.Equal(t, "/api/v1/purchase-orders/", envelope.Path)
}

func TestCreateOrderValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"details":[{"itemId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Contains(t, envelope.ValidationErrors, "datetime")
}

func TestCreateOrderBadDatetime(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":"15/03/2024","details":[{"itemId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":"2024-03-15T10:30:00","details":[{"itemId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/purchase-orders/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/purchase-orders/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec := postOrder(t, router, `{"datetime":"2024-03-15T10:30:00","details":[{"itemId":1,"quantity":1}]}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/?page=0&size=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Content []orderSummaryResponse `json:"content"`
		Page    struct {
			Number        int   `json:"number"`
			Size          int   `json:"size"`
			TotalElements int64 `json:"totalElements"`
			TotalPages    int   `json:"totalPages"`
			First         bool  `json:"first"`
			Last          bool  `json:"last"`
			HasNext       bool  `json:"hasNext"`
		} `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Content, 2)
	require.Equal(t, int64(3), page.Page.TotalElements)
	require.Equal(t, 2, page.Page.TotalPages)
	require.True(t, page.Page.First)
	require.True(t, page.Page.HasNext)
	require.False(t, page.Page.Last)
}

func TestUpdateOrderEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postOrder(t, router, `{"datetime":"2024-03-15T10:30:00","details":[{"itemId":1,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := `{"details":[{"itemId":1,"quantity":5,"unitPrice":90,"cost":80}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/purchase-orders/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(450), resp.TotalPrice)
	require.Equal(t, int64(400), resp.TotalCost)
}

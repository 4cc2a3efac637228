package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/config"
	catalogHTTP "github.com/minhhoangvu/catalog-service/internal/http"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/service"
)

type stubProductService struct {
	createFn func(ctx context.Context, params service.CreateProductParams) (model.ProductDetail, error)
	getFn    func(ctx context.Context, id uuid.UUID) (model.ProductDetail, error)
	listFn   func(ctx context.Context, params service.ListProductsParams) ([]model.ProductSummary, error)
	updateFn func(ctx context.Context, id uuid.UUID, params service.UpdateProductParams) (model.ProductDetail, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.ProductDetail, error) {
	return s.createFn(ctx, params)
}

func (s *stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (model.ProductDetail, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListProducts(ctx context.Context, params service.ListProductsParams) ([]model.ProductSummary, error) {
	return s.listFn(ctx, params)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, params service.UpdateProductParams) (model.ProductDetail, error) {
	return s.updateFn(ctx, id, params)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type stubVariantService struct {
	getFn    func(ctx context.Context, id uuid.UUID) (model.Variant, error)
	updateFn func(ctx context.Context, id uuid.UUID, params service.UpdateVariantParams) (model.Variant, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubVariantService) GetVariant(ctx context.Context, id uuid.UUID) (model.Variant, error) {
	return s.getFn(ctx, id)
}

func (s *stubVariantService) UpdateVariant(ctx context.Context, id uuid.UUID, params service.UpdateVariantParams) (model.Variant, error) {
	return s.updateFn(ctx, id, params)
}

func (s *stubVariantService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type stubCategoryService struct {
	getFn  func(ctx context.Context, id uuid.UUID) (model.Category, error)
	listFn func(ctx context.Context) ([]model.CategorySummary, error)
}

func (s *stubCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error) {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	return s.listFn(ctx)
}

type stubHealth struct{}

func (stubHealth) IsHealthy(context.Context) (bool, error) { return true, nil }

func newTestRouter(t *testing.T, productSvc service.ProductService, variantSvc service.VariantService, categorySvc service.CategoryService) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalogHTTP.New(config.HTTP{}, logger, stubHealth{}, productSvc, variantSvc, categorySvc)

	r := chi.NewRouter()
	require.NoError(t, svc.RegisterHandlers(r))
	return r
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details *[]struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func decodeErrorBody(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestCreateProductHandler(t *testing.T) {
	t.Run("Should return 201 with the created product", func(t *testing.T) {
		productID := uuid.New()
		productSvc := &stubProductService{
			createFn: func(_ context.Context, params service.CreateProductParams) (model.ProductDetail, error) {
				assert.Equal(t, "Trail Shoe", params.Name)
				require.Len(t, params.Variants, 1)
				assert.Equal(t, "SHOE-42", params.Variants[0].SKU)
				return model.ProductDetail{
					Product: model.Product{ID: productID, Name: params.Name, Status: model.ProductStatusActive},
				}, nil
			},
		}
		r := newTestRouter(t, productSvc, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products", strings.NewReader(
			`{"name":"Trail Shoe","variants":[{"sku":"SHOE-42","name":"Size 42"}]}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), productID.String())
	})

	t.Run("Should return 400 on malformed json", func(t *testing.T) {
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products", strings.NewReader(`{"name":`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ValidationErrorCode, decodeErrorBody(t, resp).Code)
	})

	t.Run("Should return 400 with field details when variants are missing", func(t *testing.T) {
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Trail Shoe"}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusBadRequest, resp.Code)
		body := decodeErrorBody(t, resp)
		assert.Equal(t, "validationError", body.Code)
		require.NotNil(t, body.Details)
		require.Len(t, *body.Details, 1)
		assert.Equal(t, "Variants", (*body.Details)[0].Field)
	})

	t.Run("Should return 409 on sku conflict", func(t *testing.T) {
		productSvc := &stubProductService{
			createFn: func(context.Context, service.CreateProductParams) (model.ProductDetail, error) {
				return model.ProductDetail{}, apperr.SKUConflictErr
			},
		}
		r := newTestRouter(t, productSvc, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products", strings.NewReader(
			`{"name":"Trail Shoe","variants":[{"sku":"SHOE-42","name":"Size 42"}]}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusConflict, resp.Code)
		assert.Equal(t, "VARIANT_SKU_CONFLICT", decodeErrorBody(t, resp).Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("Should return 400 for a malformed id", func(t *testing.T) {
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products/not-a-uuid", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.InvalidInputCode, decodeErrorBody(t, resp).Code)
	})

	t.Run("Should return 404 for an unknown product", func(t *testing.T) {
		productSvc := &stubProductService{
			getFn: func(context.Context, uuid.UUID) (model.ProductDetail, error) {
				return model.ProductDetail{}, apperr.ProductNotFoundErr
			},
		}
		r := newTestRouter(t, productSvc, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusNotFound, resp.Code)
		assert.Equal(t, "PRODUCT_NOT_FOUND", decodeErrorBody(t, resp).Code)
	})
}

func TestListProductsHandler(t *testing.T) {
	t.Run("Should pass filters through to the service", func(t *testing.T) {
		categoryID := uuid.New()
		productSvc := &stubProductService{
			listFn: func(_ context.Context, params service.ListProductsParams) ([]model.ProductSummary, error) {
				require.NotNil(t, params.Search)
				assert.Equal(t, "shoe", *params.Search)
				require.NotNil(t, params.CategoryID)
				assert.Equal(t, categoryID, *params.CategoryID)
				return []model.ProductSummary{}, nil
			},
		}
		r := newTestRouter(t, productSvc, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products?search=shoe&category_id="+categoryID.String(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusOK, resp.Code)
	})

	t.Run("Should return 400 for a malformed category filter", func(t *testing.T) {
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products?category_id=nope", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusBadRequest, resp.Code)
	})
}

func TestDeleteProductHandler(t *testing.T) {
	t.Run("Should return 204 with an empty body", func(t *testing.T) {
		productSvc := &stubProductService{
			deleteFn: func(context.Context, uuid.UUID) error { return nil },
		}
		r := newTestRouter(t, productSvc, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodDelete, "/api/v1/products/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusNoContent, resp.Code)
		assert.Empty(t, resp.Body.String())
	})
}

func TestVariantHandlers(t *testing.T) {
	t.Run("Should return 400 when deleting the last variant", func(t *testing.T) {
		variantSvc := &stubVariantService{
			deleteFn: func(context.Context, uuid.UUID) error { return apperr.LastVariantErr },
		}
		r := newTestRouter(t, &stubProductService{}, variantSvc, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodDelete, "/api/v1/variants/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusBadRequest, resp.Code)
		assert.Equal(t, "VARIANT_LAST_REMAINING", decodeErrorBody(t, resp).Code)
	})

	t.Run("Should return 200 with the updated variant", func(t *testing.T) {
		variantID := uuid.New()
		variantSvc := &stubVariantService{
			updateFn: func(_ context.Context, id uuid.UUID, params service.UpdateVariantParams) (model.Variant, error) {
				assert.Equal(t, variantID, id)
				require.NotNil(t, params.PriceCents)
				assert.Equal(t, int64(9900), *params.PriceCents)
				return model.Variant{ID: id, SKU: "SHOE-42", PriceCents: *params.PriceCents}, nil
			},
		}
		r := newTestRouter(t, &stubProductService{}, variantSvc, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodPatch, "/api/v1/variants/"+variantID.String(),
			strings.NewReader(`{"price_cents":9900}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"price_cents":9900`)
	})
}

func TestCategoryHandlers(t *testing.T) {
	t.Run("Should return 200 with category summaries", func(t *testing.T) {
		categorySvc := &stubCategoryService{
			listFn: func(context.Context) ([]model.CategorySummary, error) {
				return []model.CategorySummary{
					{Category: model.Category{ID: uuid.New(), Name: "Footwear"}, ProductCount: 3},
				}, nil
			},
		}
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, categorySvc)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/categories", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Footwear")
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("Should return 200 when the database is reachable", func(t *testing.T) {
		r := newTestRouter(t, &stubProductService{}, &stubVariantService{}, &stubCategoryService{})

		req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, nethttp.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"healthy":true`)
	})
}

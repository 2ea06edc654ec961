package frontend_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catalog/internal/frontend"
	"catalog/internal/models"
	"catalog/internal/validation"
	"catalog/pkg/client"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockProductAPI is a mock implementation of frontend.ProductAPI
type MockProductAPI struct {
	mock.Mock
}

func (m *MockProductAPI) GetProducts() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductAPI) GetProductByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductAPI) AddProduct(req client.ProductRequest) (*models.Product, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductAPI) UpdateProduct(id uint, req client.ProductRequest) (*models.Product, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func setupApp(t *testing.T) (*fiber.App, *MockProductAPI) {
	t.Helper()
	api := new(MockProductAPI)
	handler, err := frontend.NewHandler(api, zaptest.NewLogger(t))
	require.NoError(t, err)

	app := fiber.New()
	handler.RegisterRoutes(app)
	return app, api
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func boolPtr(b bool) *bool { return &b }

func TestProductList(t *testing.T) {
	app, api := setupApp(t)
	api.On("GetProducts").Return([]models.Product{
		{ID: 1, Name: "Monitor Curvo", Price: 300, Availability: true},
		{ID: 2, Name: "Audífonos", Price: 99.5, Availability: false},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := readBody(t, resp)
	assert.Contains(t, body, "Monitor Curvo")
	assert.Contains(t, body, "$300.00")
	assert.Contains(t, body, "$99.50")
	assert.Contains(t, body, "No Disponible")
	assert.Contains(t, body, `href="/productos/2/editar"`)
	assert.Contains(t, body, `href="/productos/nuevo"`)
}

func TestProductListEmpty(t *testing.T) {
	app, api := setupApp(t)
	api.On("GetProducts").Return([]models.Product{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No hay productos")
}

func TestProductListAPIFailure(t *testing.T) {
	app, api := setupApp(t)
	api.On("GetProducts").Return(nil, errors.New("connection refused"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), frontend.MsgLoadFailed)
}

func TestNewProductForm(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/productos/nuevo", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "Registrar Producto")
	assert.Contains(t, body, `action="/productos/nuevo"`)
	assert.NotContains(t, body, `name="availability"`)
}

func TestCreateProduct(t *testing.T) {
	t.Run("redirects to the list on success", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("AddProduct", client.ProductRequest{Name: "Teclado", Price: 45.5}).
			Return(&models.Product{ID: 1, Name: "Teclado", Price: 45.5, Availability: true}, nil)

		form := url.Values{"name": {"Teclado"}, "price": {"45.5"}}
		resp, err := app.Test(postForm("/productos/nuevo", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		api.AssertExpectations(t)
	})

	t.Run("requires every field", func(t *testing.T) {
		app, api := setupApp(t)

		form := url.Values{"name": {"Teclado"}, "price": {""}}
		resp, err := app.Test(postForm("/productos/nuevo", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, frontend.MsgRequiredFields)
		assert.Contains(t, body, `value="Teclado"`)
		api.AssertNotCalled(t, "AddProduct", mock.Anything)
	})

	t.Run("rejects a non numeric price", func(t *testing.T) {
		app, api := setupApp(t)

		form := url.Values{"name": {"Teclado"}, "price": {"mucho"}}
		resp, err := app.Test(postForm("/productos/nuevo", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), frontend.MsgInvalidData)
		api.AssertNotCalled(t, "AddProduct", mock.Anything)
	})

	t.Run("shows validation issues from the API", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("AddProduct", client.ProductRequest{Name: "Teclado", Price: -3}).
			Return(nil, &client.APIError{
				StatusCode: http.StatusBadRequest,
				Issues:     []validation.Issue{{Type: "field", Msg: validation.MsgPriceInvalid, Path: "price", Location: "body"}},
			})

		form := url.Values{"name": {"Teclado"}, "price": {"-3"}}
		resp, err := app.Test(postForm("/productos/nuevo", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), validation.MsgPriceInvalid)
	})

	t.Run("reports transport failures generically", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("AddProduct", mock.Anything).Return(nil, errors.New("timeout"))

		form := url.Values{"name": {"Teclado"}, "price": {"10"}}
		resp, err := app.Test(postForm("/productos/nuevo", form), -1)
		require.NoError(t, err)
		assert.Contains(t, readBody(t, resp), frontend.MsgSaveFailed)
	})
}

func TestEditProductForm(t *testing.T) {
	t.Run("prefills the product", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("GetProductByID", uint(7)).
			Return(&models.Product{ID: 7, Name: "Mouse", Price: 25, Availability: false}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/productos/7/editar", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, `value="Mouse"`)
		assert.Contains(t, body, `value="25"`)
		assert.Contains(t, body, `action="/productos/7/editar"`)
		assert.Contains(t, body, `<option value="false" selected>`)
	})

	t.Run("redirects when the product is missing", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("GetProductByID", uint(99)).
			Return(nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Producto no encontrado"})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/productos/99/editar", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("redirects on a malformed id", func(t *testing.T) {
		app, api := setupApp(t)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/productos/abc/editar", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		api.AssertNotCalled(t, "GetProductByID", mock.Anything)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("redirects to the list on success", func(t *testing.T) {
		app, api := setupApp(t)
		want := client.ProductRequest{Name: "Mouse", Price: 30, Availability: boolPtr(false)}
		api.On("UpdateProduct", uint(7), want).
			Return(&models.Product{ID: 7, Name: "Mouse", Price: 30}, nil)

		form := url.Values{"name": {"Mouse"}, "price": {"30"}, "availability": {"false"}}
		resp, err := app.Test(postForm("/productos/7/editar", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		api.AssertExpectations(t)
	})

	t.Run("requires availability", func(t *testing.T) {
		app, api := setupApp(t)

		form := url.Values{"name": {"Mouse"}, "price": {"30"}}
		resp, err := app.Test(postForm("/productos/7/editar", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), frontend.MsgRequiredFields)
		api.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})

	t.Run("redirects when the product disappeared", func(t *testing.T) {
		app, api := setupApp(t)
		api.On("UpdateProduct", uint(7), mock.Anything).
			Return(nil, &client.APIError{StatusCode: http.StatusNotFound})

		form := url.Values{"name": {"Mouse"}, "price": {"30"}, "availability": {"true"}}
		resp, err := app.Test(postForm("/productos/7/editar", form), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	})
}

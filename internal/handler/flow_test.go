package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storeapi/internal/apperrors"
	"storeapi/internal/crypto"
	"storeapi/internal/middleware"
	"storeapi/internal/models"
	"storeapi/internal/service"
	"storeapi/internal/token"
)

// In-memory stores so the full request pipeline (deserialize stage, role
// gate, handlers, services) runs against real token and hashing code.

type memUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func (m *memUserRepo) CreateUser(user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.ErrDuplicateEmail
	}
	m.byEmail[user.Email] = user
	m.byID[user.UserID] = user
	return nil
}

func (m *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetUserByID(userID string) (*models.User, error) {
	user, ok := m.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

type memProductRepo struct {
	byID map[string]*models.Product
}

func (m *memProductRepo) CreateProduct(product *models.Product) error {
	m.byID[product.ProductID] = product
	return nil
}

func (m *memProductRepo) GetProducts() ([]*models.Product, error) {
	var products []*models.Product
	for _, p := range m.byID {
		products = append(products, p)
	}
	return products, nil
}

func (m *memProductRepo) GetProductByID(productID string) (*models.Product, error) {
	product, ok := m.byID[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return product, nil
}

func (m *memProductRepo) UpdateProduct(product *models.Product) error {
	if _, ok := m.byID[product.ProductID]; !ok {
		return apperrors.ErrNotFound
	}
	m.byID[product.ProductID] = product
	return nil
}

func (m *memProductRepo) DeleteProduct(productID string) error {
	if _, ok := m.byID[productID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.byID, productID)
	return nil
}

func newAppRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	tokens := token.NewService([]byte("access-secret"), []byte("refresh-secret"), 15*time.Minute, 24*time.Hour)
	hasher := crypto.NewPasswordHasher(2)

	users := &memUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
	products := &memProductRepo{byID: map[string]*models.Product{}}

	authHandler := NewAuthHandler(service.NewAuthService(users, hasher, tokens, nil, logger), logger)
	productHandler := NewProductHandler(service.NewProductService(products, nil, logger), logger)

	r := gin.New()
	r.Use(middleware.Deserialize(tokens, logger))

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/refresh", authHandler.Refresh)

	r.GET("/product", productHandler.GetProducts)
	r.GET("/product/:id", productHandler.GetProductByID)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	r.POST("/product", adminOnly, productHandler.CreateProduct)
	r.PUT("/product/:id", adminOnly, productHandler.UpdateProduct)
	r.DELETE("/product/:id", adminOnly, productHandler.DeleteProduct)

	return r
}

func do(r *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginTokens(t *testing.T, r *gin.Engine, email, password string) (access, refresh string) {
	t.Helper()
	w := do(r, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	require.NotEmpty(t, resp.Data.RefreshToken)
	return resp.Data.AccessToken, resp.Data.RefreshToken
}

func TestRegisterLoginAndRoleGate(t *testing.T) {
	r := newAppRouter(t)

	// Register a regular and an admin user.
	w := do(r, http.MethodPost, "/auth/register", "", `{"name":"Yanda","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/auth/register", "", `{"name":"Yanda","email":"admin@x.com","password":"p","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate email is a 422.
	w = do(r, http.MethodPost, "/auth/register", "", `{"name":"Other","email":"a@x.com","password":"q"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	regularAccess, _ := loginTokens(t, r, "a@x.com", "p")
	adminAccess, _ := loginTokens(t, r, "admin@x.com", "p")

	createBody := `{"name":"Jersey","price":279999,"size":"M"}`

	// No token: the gated write is denied, not the request at deserialize.
	w = do(r, http.MethodPost, "/product", "", createBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Regular-role token on an admin route: denied.
	w = do(r, http.MethodPost, "/product", regularAccess, createBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin token: allowed.
	w = do(r, http.MethodPost, "/product", adminAccess, createBody)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The public list stays reachable, even with a garbage token attached.
	w = do(r, http.MethodGet, "/product", "garbage-token", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jersey")
}

func TestLoginFailuresAreUniform(t *testing.T) {
	r := newAppRouter(t)

	w := do(r, http.MethodPost, "/auth/register", "", `{"name":"Yanda","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	unknown := do(r, http.MethodPost, "/auth/login", "", `{"email":"nobody@x.com","password":"p"}`)
	wrong := do(r, http.MethodPost, "/auth/login", "", `{"email":"a@x.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, unknown.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String(),
		"unknown email and wrong password must be indistinguishable")
}

func TestRefreshFlow(t *testing.T) {
	r := newAppRouter(t)

	w := do(r, http.MethodPost, "/auth/register", "", `{"name":"Yanda","email":"a@x.com","password":"p","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	access, refresh := loginTokens(t, r, "a@x.com", "p")

	// A refresh token yields a fresh access token usable on gated routes.
	w = do(r, http.MethodPost, "/auth/refresh", "", `{"refreshToken":"`+refresh+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)

	w = do(r, http.MethodPost, "/product", resp.Data.AccessToken, `{"name":"Jersey","price":1,"size":"S"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// An access token is not accepted at the refresh endpoint.
	w = do(r, http.MethodPost, "/auth/refresh", "", `{"refreshToken":"`+access+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCRUD(t *testing.T) {
	r := newAppRouter(t)

	w := do(r, http.MethodPost, "/auth/register", "", `{"name":"Yanda","email":"admin@x.com","password":"p","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	adminAccess, _ := loginTokens(t, r, "admin@x.com", "p")

	w = do(r, http.MethodPost, "/product", adminAccess, `{"name":"Jersey","price":279999,"size":"M"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Grab the generated id from the list.
	w = do(r, http.MethodGet, "/product", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []struct {
			ProductID string `json:"product_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	id := list.Data[0].ProductID

	w = do(r, http.MethodGet, "/product/"+id, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jersey")

	w = do(r, http.MethodGet, "/product/PRODUCT_123", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/product/"+id, adminAccess, `{"price":259999,"size":"XL"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/product/"+id, "", "")
	assert.Contains(t, w.Body.String(), `"size":"XL"`)
	assert.Contains(t, w.Body.String(), `"name":"Jersey"`)

	w = do(r, http.MethodDelete, "/product/"+id, adminAccess, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/product/"+id, adminAccess, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

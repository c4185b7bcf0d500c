package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/product-catalog/internal/integrity"
	"github.com/iliyamo/product-catalog/internal/model"
	"github.com/iliyamo/product-catalog/internal/queue"
	"github.com/iliyamo/product-catalog/internal/repository"
	"github.com/iliyamo/product-catalog/internal/utils"
)

// In-memory store fakes shared by the handler tests. Each one implements
// the store interface its handler consumes, plus the integrity finder
// contracts where relevant, so a single fake backs both the handler and
// the checker the way the real repositories do.

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]*model.User{}}
}

func (m *memUsers) Create(_ context.Context, firstName, lastName, email, password string, cost int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type memCategories struct {
	mu   sync.Mutex
	cats map[uuid.UUID]*model.Category
}

func newMemCategories() *memCategories {
	return &memCategories{cats: map[uuid.UUID]*model.Category{}}
}

func (m *memCategories) Create(_ context.Context, name, slug, description, imageURL string, parentID *uuid.UUID) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat := &model.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: description,
		ImageURL:    imageURL,
		ParentID:    parentID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	m.cats[cat.ID] = cat
	return cat, nil
}

func (m *memCategories) GetByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.cats[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return cat, nil
}

func (m *memCategories) List(_ context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Category, 0, len(m.cats))
	for _, cat := range m.cats {
		out = append(out, *cat)
	}
	return out, nil
}

func (m *memCategories) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.cats[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	for col, v := range fields {
		switch col {
		case "name":
			cat.Name = v.(string)
		case "slug":
			cat.Slug = v.(string)
		case "description":
			cat.Description = v.(string)
		case "image_url":
			cat.ImageURL = v.(string)
		case "parent_id":
			p := v.(uuid.UUID)
			cat.ParentID = &p
		}
	}
	cat.UpdatedAt = time.Now().UTC()
	return cat, nil
}

func (m *memCategories) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cats[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.cats, id)
	return nil
}

func (m *memCategories) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cats[id]
	return ok, nil
}

func (m *memCategories) ParentID(_ context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat, ok := m.cats[id]
	if !ok {
		return nil, false, nil
	}
	return cat.ParentID, true, nil
}

type memProducts struct {
	mu    sync.Mutex
	prods map[uuid.UUID]*model.Product
}

func newMemProducts() *memProducts {
	return &memProducts{prods: map[uuid.UUID]*model.Product{}}
}

func (m *memProducts) Create(_ context.Context, p *model.Product) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.prods[cp.ID] = &cp
	return &cp, nil
}

func (m *memProducts) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prods[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *memProducts) GetDetail(_ context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prods[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &model.ProductDetail{
		Product:  *p,
		Images:   []model.ProductImage{},
		Variants: []model.ProductVariant{},
	}, nil
}

func (m *memProducts) List(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Product, 0, len(m.prods))
	for _, p := range m.prods {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prods[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	for col, v := range fields {
		switch col {
		case "title":
			p.Title = v.(string)
		case "slug":
			p.Slug = v.(string)
		case "description":
			p.Description = v.(string)
		case "base_price":
			p.BasePrice = v.(float64)
		case "original_price":
			op := v.(float64)
			p.OriginalPrice = &op
		case "stock_quantity":
			p.StockQuantity = v.(int)
		case "specifications":
			p.Specifications = json.RawMessage(v.([]byte))
		case "is_featured":
			p.IsFeatured = v.(bool)
		case "is_active":
			p.IsActive = v.(bool)
		case "category_id":
			p.CategoryID = v.(uuid.UUID)
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}

func (m *memProducts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prods[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.prods, id)
	return nil
}

func (m *memProducts) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.prods[id]
	return ok, nil
}

type memImages struct {
	mu   sync.Mutex
	imgs map[uuid.UUID]*model.ProductImage
}

func newMemImages() *memImages {
	return &memImages{imgs: map[uuid.UUID]*model.ProductImage{}}
}

func (m *memImages) Create(_ context.Context, img *model.ProductImage) (*model.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *img
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.imgs[cp.ID] = &cp
	return &cp, nil
}

func (m *memImages) GetByID(_ context.Context, id uuid.UUID) (*model.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.imgs[id]
	if !ok {
		return nil, repository.ErrImageNotFound
	}
	return img, nil
}

func (m *memImages) List(_ context.Context) ([]model.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ProductImage, 0, len(m.imgs))
	for _, img := range m.imgs {
		out = append(out, *img)
	}
	return out, nil
}

func (m *memImages) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*model.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.imgs[id]
	if !ok {
		return nil, repository.ErrImageNotFound
	}
	for col, v := range fields {
		switch col {
		case "product_id":
			img.ProductID = v.(uuid.UUID)
		case "image_url":
			img.ImageURL = v.(string)
		case "alt_text":
			alt := v.(string)
			img.AltText = &alt
		case "display_order":
			img.DisplayOrder = v.(int)
		case "is_primary":
			img.IsPrimary = v.(bool)
		}
	}
	img.UpdatedAt = time.Now().UTC()
	return img, nil
}

func (m *memImages) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.imgs[id]; !ok {
		return repository.ErrImageNotFound
	}
	delete(m.imgs, id)
	return nil
}

type memVariants struct {
	mu       sync.Mutex
	variants map[uuid.UUID]*model.ProductVariant
}

func newMemVariants() *memVariants {
	return &memVariants{variants: map[uuid.UUID]*model.ProductVariant{}}
}

func (m *memVariants) Create(_ context.Context, v *model.ProductVariant) (*model.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	m.variants[cp.ID] = &cp
	return &cp, nil
}

func (m *memVariants) GetByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, repository.ErrVariantNotFound
	}
	return v, nil
}

func (m *memVariants) List(_ context.Context) ([]model.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ProductVariant, 0, len(m.variants))
	for _, v := range m.variants {
		out = append(out, *v)
	}
	return out, nil
}

func (m *memVariants) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*model.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, repository.ErrVariantNotFound
	}
	for col, raw := range fields {
		switch col {
		case "product_id":
			v.ProductID = raw.(uuid.UUID)
		case "variant_name":
			v.VariantName = raw.(string)
		case "variant_value":
			v.VariantValue = raw.(string)
		case "price_adjustment":
			v.PriceAdjustment = raw.(float64)
		case "stock_quantity":
			v.StockQuantity = raw.(int)
		case "image_url":
			u := raw.(string)
			v.ImageURL = &u
		}
	}
	v.UpdatedAt = time.Now().UTC()
	return v, nil
}

func (m *memVariants) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.variants[id]; !ok {
		return repository.ErrVariantNotFound
	}
	delete(m.variants, id)
	return nil
}

// recordSink captures published events so tests can assert on them.
type recordSink struct {
	mu     sync.Mutex
	events []queue.CatalogEvent
}

func (s *recordSink) Publish(_ context.Context, ev queue.CatalogEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordSink) all() []queue.CatalogEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]queue.CatalogEvent(nil), s.events...)
}

// newChecker wires the fakes into an integrity checker the way main wires
// the real repositories.
func newChecker(cats *memCategories, prods *memProducts) *integrity.Checker {
	if cats == nil {
		cats = newMemCategories()
	}
	if prods == nil {
		prods = newMemProducts()
	}
	return integrity.NewChecker(cats, prods)
}

// newRequest builds an Echo context for a handler invocation. body may be
// empty for reads and deletes; paramID sets the :id path parameter.
func newRequest(method, path, body, paramID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	return c, rec
}

// decodeEnvelope unmarshals a recorded response into the uniform envelope
// shape and asserts the status string matches the HTTP class.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (status, message string, data map[string]any) {
	t.Helper()
	var body struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	if rec.Code < 400 {
		require.Equal(t, "success", body.Status)
	} else {
		require.Equal(t, "error", body.Status)
	}
	return body.Status, body.Message, body.Data
}

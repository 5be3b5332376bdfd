package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
	"github.com/Meghana-05-02/RFP-System/internal/services"
)

type stubVendorManager struct {
	create func(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error)
	get    func(ctx context.Context, id int64) (*models.Vendor, error)
	list   func(ctx context.Context, name, email string) ([]models.Vendor, error)
	delete func(ctx context.Context, id int64) error
}

func (s *stubVendorManager) CreateVendor(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error) {
	return s.create(ctx, req)
}

func (s *stubVendorManager) ListVendors(ctx context.Context, name, email string) ([]models.Vendor, error) {
	return s.list(ctx, name, email)
}

func (s *stubVendorManager) GetVendor(ctx context.Context, id int64) (*models.Vendor, error) {
	return s.get(ctx, id)
}

func (s *stubVendorManager) UpdateVendor(ctx context.Context, id int64, req services.UpdateVendorRequest) (*models.Vendor, error) {
	panic("not implemented")
}

func (s *stubVendorManager) DeleteVendor(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

func newVendorRouter(stub *stubVendorManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewVendorHandler(stub)
	router.POST("/api/v1/vendors", handler.CreateVendor)
	router.GET("/api/v1/vendors", handler.ListVendors)
	router.GET("/api/v1/vendors/:id", handler.GetVendor)
	router.DELETE("/api/v1/vendors/:id", handler.DeleteVendor)
	return router
}

func TestCreateVendorSuccess(t *testing.T) {
	stub := &stubVendorManager{
		create: func(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error) {
			return &models.Vendor{ID: 1, Name: req.Name, Email: req.Email, ContactPerson: req.ContactPerson}, nil
		},
	}

	w, resp := doJSON(t, newVendorRouter(stub), http.MethodPost, "/api/v1/vendors",
		`{"name": "Dell Technologies", "email": "sales@dell.com", "contact_person": "John Smith"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", w.Code, w.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("resp.Status = %q", resp.Status)
	}
}

func TestCreateVendorValidation(t *testing.T) {
	stub := &stubVendorManager{
		create: func(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	router := newVendorRouter(stub)

	bodies := []string{
		`{}`,
		`{"name": "Dell", "contact_person": "John"}`,
		`{"name": "Dell", "email": "not-an-email", "contact_person": "John"}`,
	}
	for _, body := range bodies {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/vendors", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCreateVendorDuplicateEmail(t *testing.T) {
	stub := &stubVendorManager{
		create: func(ctx context.Context, req services.CreateVendorRequest) (*models.Vendor, error) {
			return nil, repositories.ErrDuplicateEmail
		},
	}

	w, _ := doJSON(t, newVendorRouter(stub), http.MethodPost, "/api/v1/vendors",
		`{"name": "Dell", "email": "sales@dell.com", "contact_person": "John"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestListVendorsPassesFilters(t *testing.T) {
	stub := &stubVendorManager{
		list: func(ctx context.Context, name, email string) ([]models.Vendor, error) {
			if name != "dell" || email != "sales" {
				t.Errorf("filters = (%q, %q)", name, email)
			}
			return []models.Vendor{}, nil
		},
	}

	w, _ := doJSON(t, newVendorRouter(stub), http.MethodGet, "/api/v1/vendors?name=dell&email=sales", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestGetVendorNotFound(t *testing.T) {
	stub := &stubVendorManager{
		get: func(ctx context.Context, id int64) (*models.Vendor, error) {
			return nil, services.ErrVendorNotFound
		},
	}

	w, _ := doJSON(t, newVendorRouter(stub), http.MethodGet, "/api/v1/vendors/42", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteVendor(t *testing.T) {
	stub := &stubVendorManager{
		delete: func(ctx context.Context, id int64) error {
			if id != 9 {
				t.Errorf("id = %d, want 9", id)
			}
			return nil
		},
	}

	w, _ := doJSON(t, newVendorRouter(stub), http.MethodDelete, "/api/v1/vendors/9", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

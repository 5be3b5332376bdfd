package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Meghana-05-02/RFP-System/internal/models"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
)

var ErrVendorNotFound = errors.New("vendor not found")

type VendorService struct {
	vendorRepo *repositories.VendorRepository
}

func NewVendorService(vendorRepo *repositories.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

type CreateVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactPerson string `json:"contact_person" binding:"required"`
}

type UpdateVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactPerson string `json:"contact_person" binding:"required"`
}

func (s *VendorService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*models.Vendor, error) {
	vendor := &models.Vendor{
		Name:          req.Name,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (s *VendorService) ListVendors(ctx context.Context, name, email string) ([]models.Vendor, error) {
	vendors, err := s.vendorRepo.List(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	return vendors, nil
}

func (s *VendorService) GetVendor(ctx context.Context, id int64) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

func (s *VendorService) UpdateVendor(ctx context.Context, id int64, req UpdateVendorRequest) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	vendor.Name = req.Name
	vendor.Email = req.Email
	vendor.ContactPerson = req.ContactPerson

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (s *VendorService) DeleteVendor(ctx context.Context, id int64) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get vendor: %w", err)
	}
	if vendor == nil {
		return ErrVendorNotFound
	}

	return s.vendorRepo.Delete(ctx, id)
}

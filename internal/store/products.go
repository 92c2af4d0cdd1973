package store

import (
	"errors"
	"strings"

	"rbac-dashboard/internal/apperr"
	"rbac-dashboard/internal/models"

	"gorm.io/gorm"
)

// ProductStore is plain catalog CRUD; no access-control nuance beyond the
// router requiring an authenticated session.
type ProductStore struct {
	DB *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore { return &ProductStore{DB: db} }

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

func (s *ProductStore) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (s *ProductStore) Get(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal(err)
	}
	return &product, nil
}

func (s *ProductStore) Create(in CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" || in.Price == 0 {
		return nil, apperr.Validation("name, price and category are required")
	}
	if in.Price < 0 {
		return nil, apperr.Validation("price must be positive")
	}

	product := models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    category,
	}
	if err := s.DB.Create(&product).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &product, nil
}

func (s *ProductStore) Update(id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Validation("price must be positive")
		}
		updates["price"] = *in.Price
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, apperr.Validation("category cannot be empty")
		}
		updates["category"] = category
	}

	if len(updates) > 0 {
		if err := s.DB.Model(product).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return product, nil
}

func (s *ProductStore) Delete(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(product).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

package store

import (
	"testing"

	"rbac-dashboard/internal/apperr"

	"github.com/stretchr/testify/require"
)

func TestProductCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductStore(db)

	product, err := s.Create(CreateProductInput{
		Name:        "Gadget",
		Description: "a gadget",
		Price:       19.99,
		Category:    "Electronics",
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	products, err := s.List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Gadget", products[0].Name)
}

func TestProductCreateRequiresFields(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductStore(db)

	_, err := s.Create(CreateProductInput{Name: "Gadget", Price: 10})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.Create(CreateProductInput{Name: "Gadget", Category: "Electronics"})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.Create(CreateProductInput{Price: 10, Category: "Electronics"})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductPartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductStore(db)

	product, err := s.Create(CreateProductInput{Name: "Gadget", Price: 10, Category: "Electronics"})
	require.NoError(t, err)

	newPrice := 12.5
	updated, err := s.Update(product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 12.5, updated.Price)
	require.Equal(t, "Gadget", updated.Name)
	require.Equal(t, "Electronics", updated.Category)

	empty := ""
	_, err = s.Update(product.ID, UpdateProductInput{Name: &empty})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductDelete(t *testing.T) {
	db := setupTestDB(t)
	s := NewProductStore(db)

	product, err := s.Create(CreateProductInput{Name: "Gadget", Price: 10, Category: "Electronics"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(product.ID))
	_, err = s.Get(product.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.True(t, apperr.IsKind(s.Delete(product.ID), apperr.KindNotFound))
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/lock"
)

func newProductFixture() (*memStore, *ProductService) {
	store := newMemStore()
	return store, NewProductService(store, lock.NewRegistry())
}

func TestCreateProduct(t *testing.T) {
	store, svc := newProductFixture()

	product, err := svc.CreateProduct(context.Background(), "Piano", 1299.99, 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == "" {
		t.Error("expected non-empty product ID")
	}
	if got := store.stock(product.ID); got != 5 {
		t.Errorf("expected stock 5, got %d", got)
	}
}

func TestCreateProduct_NegativeStock(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.CreateProduct(context.Background(), "Piano", 1299.99, -1)
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got: %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.GetProduct(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	_, svc := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "Piano", 1299.99, 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateProduct(context.Background(), created.ID, "Grand Piano", 4999.00, 2)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Grand Piano" || updated.Price != 4999.00 || updated.StockQuantity != 2 {
		t.Errorf("unexpected product after update: %+v", updated)
	}
}

func TestDeleteProduct(t *testing.T) {
	_, svc := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "Piano", 1299.99, 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), created.ID)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got: %v", err)
	}

	err = svc.DeleteProduct(context.Background(), created.ID)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on double delete, got: %v", err)
	}
}

func TestRestock(t *testing.T) {
	store, svc := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "Violin", 349.50, 3)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	product, err := svc.Restock(context.Background(), created.ID, 7)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if product.StockQuantity != 10 {
		t.Errorf("expected stock 10, got %d", product.StockQuantity)
	}
	if got := store.stock(created.ID); got != 10 {
		t.Errorf("restock not persisted: got %d", got)
	}
}

func TestRestock_InvalidQuantity(t *testing.T) {
	store, svc := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "Violin", 349.50, 3)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, quantity := range []int{0, -5} {
		_, err := svc.Restock(context.Background(), created.ID, quantity)
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got: %v", quantity, err)
		}
	}
	if got := store.stock(created.ID); got != 3 {
		t.Errorf("stock mutated by rejected restock: got %d", got)
	}
}

func TestRestock_NotFound(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.Restock(context.Background(), "missing", 5)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

package store

import (
	"context"
	"errors"
	"testing"
)

func TestShoppingAddListDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.AddShoppingItem(ctx, " Milk ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	s.AddShoppingItem(ctx, "Bread")

	items, _ := s.ListShopping(ctx)
	if len(items) != 2 || items[0].Name != "Milk" {
		t.Fatalf("unexpected list %+v", items)
	}

	if err := s.DeleteShoppingItem(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteShoppingItem(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.AddShoppingItem(ctx, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestAddPantryToShopping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	egg, _ := s.AddPantryItem(ctx, "Egg")
	added, err := s.AddPantryToShopping(ctx, egg.ID)
	if err != nil {
		t.Fatalf("add to shopping: %v", err)
	}
	if added == nil || added.Name != "Egg" {
		t.Fatalf("expected Egg queued, got %+v", added)
	}

	again, err := s.AddPantryToShopping(ctx, egg.ID)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if again != nil {
		t.Errorf("expected no-op for already queued item, got %+v", again)
	}

	items, _ := s.ListShopping(ctx)
	if len(items) != 1 {
		t.Errorf("expected 1 entry, got %d", len(items))
	}

	if _, err := s.AddPantryToShopping(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkPurchased(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	egg, _ := s.AddPantryItem(ctx, "Egg")
	s.SetAvailable(ctx, egg.ID, false)

	eggs, _ := s.AddShoppingItem(ctx, "egg ")
	cream, _ := s.AddShoppingItem(ctx, "Cream")

	if err := s.MarkPurchased(ctx, eggs.ID); err != nil {
		t.Fatalf("purchase egg: %v", err)
	}
	if err := s.MarkPurchased(ctx, cream.ID); err != nil {
		t.Fatalf("purchase cream: %v", err)
	}

	pantry, _ := s.ListPantry(ctx, ListPantryParams{})
	if len(pantry) != 2 {
		t.Fatalf("expected 2 pantry items, got %+v", pantry)
	}
	for _, p := range pantry {
		if !p.Available {
			t.Errorf("expected %q to be available", p.Name)
		}
	}
	if pantry[1].Name != "Cream" {
		t.Errorf("expected new pantry item Cream, got %q", pantry[1].Name)
	}

	shopping, _ := s.ListShopping(ctx)
	if len(shopping) != 0 {
		t.Errorf("expected empty shopping list, got %+v", shopping)
	}

	if err := s.MarkPurchased(ctx, cream.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkAllPurchased(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddShoppingItem(ctx, "Lemon")
	s.AddShoppingItem(ctx, "lemon")
	s.AddShoppingItem(ctx, "Thyme")

	n, err := s.MarkAllPurchased(ctx)
	if err != nil {
		t.Fatalf("purchase all: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 purchased, got %d", n)
	}

	pantry, _ := s.ListPantry(ctx, ListPantryParams{})
	if len(pantry) != 2 {
		t.Errorf("expected 2 pantry items (lemon deduplicated), got %+v", pantry)
	}
	shopping, _ := s.ListShopping(ctx)
	if len(shopping) != 0 {
		t.Errorf("expected empty list, got %d", len(shopping))
	}
}

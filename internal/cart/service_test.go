package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

type stubCartStore struct {
	mu        sync.Mutex
	items     map[string]appstate.Product
	qty       map[string]int
	setErr    error
	setCalls  int
	delCalls  int
	incrCalls int
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{
		items: make(map[string]appstate.Product),
		qty:   make(map[string]int),
	}
}

func (s *stubCartStore) SetCartItem(ctx context.Context, userID uuid.UUID, product appstate.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	product.IsInCart = true
	product.Quantity = quantity
	s.items[product.ID] = product
	s.qty[product.ID] = quantity
	return nil
}

func (s *stubCartStore) DeleteCartItem(ctx context.Context, userID uuid.UUID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delCalls++
	delete(s.items, productID)
	delete(s.qty, productID)
	return nil
}

func (s *stubCartStore) GetAllCartItems(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]appstate.Product, 0, len(s.items))
	for id, item := range s.items {
		item.Quantity = 1
		if q, ok := s.qty[id]; ok {
			item.Quantity = q
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubCartStore) IncreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incrCalls++
	base, ok := s.qty[productID]
	if !ok {
		base = 1
	}
	next := base + delta
	s.qty[productID] = next
	return next, nil
}

func (s *stubCartStore) DecreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base, ok := s.qty[productID]
	if !ok {
		base = 1
	}
	next := base - delta
	if next > 0 {
		s.qty[productID] = next
		return next, nil
	}
	delete(s.qty, productID)
	delete(s.items, productID)
	return 0, nil
}

func newTestService(t *testing.T, store *stubCartStore) (Service, *appstate.Registry, uuid.UUID) {
	t.Helper()
	registry := appstate.NewRegistry()
	svc, err := NewService(ServiceParams{Store: store, States: registry})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()
	state := registry.Create(userID)
	state.ReplaceProducts([]appstate.Product{
		{ID: "1", Title: "ring", Price: 10, Stock: 5, Quantity: 1},
		{ID: "2", Title: "necklace", Price: 5, Stock: 0, Quantity: 1},
	})
	return svc, registry, userID
}

func TestToggleCartAddsWithQuantityOne(t *testing.T) {
	store := newStubCartStore()
	svc, registry, userID := newTestService(t, store)
	ctx := context.Background()

	added, items, err := svc.ToggleCart(ctx, userID, "1")
	if err != nil {
		t.Fatalf("toggle cart: %v", err)
	}
	if !added {
		t.Fatal("expected add")
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("unexpected cart %+v", items)
	}

	state, _ := registry.Get(userID)
	if p, _ := state.Product("1"); !p.IsInCart {
		t.Fatal("session flag not set")
	}
}

func TestToggleCartOutOfStockShortCircuits(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)

	_, _, err := svc.ToggleCart(context.Background(), userID, "2")
	if !pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
		t.Fatalf("expected out-of-stock, got %v", err)
	}
	if store.setCalls != 0 {
		t.Fatal("remote write issued for out-of-stock product")
	}
}

func TestToggleCartOutOfStockRejectsEvenWhenInCart(t *testing.T) {
	store := newStubCartStore()
	svc, registry, userID := newTestService(t, store)

	state, _ := registry.Get(userID)
	state.SetInCartFlag("2", true, 1)

	_, _, err := svc.ToggleCart(context.Background(), userID, "2")
	if !pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
		t.Fatalf("expected out-of-stock, got %v", err)
	}
	if p, _ := state.Product("2"); !p.IsInCart {
		t.Fatal("session flag must not flip for an out-of-stock product")
	}
	if store.setCalls != 0 || store.delCalls != 0 {
		t.Fatal("no remote write expected for an out-of-stock product")
	}
}

func TestToggleCartOffIssuesNoRemoteRemove(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)
	ctx := context.Background()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); err != nil {
		t.Fatalf("toggle on: %v", err)
	}

	added, _, err := svc.ToggleCart(ctx, userID, "1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if added {
		t.Fatal("expected toggle off")
	}
	if store.delCalls != 0 {
		t.Fatal("toggle off must not delete the stored line")
	}
	if _, ok := store.items["1"]; !ok {
		t.Fatal("stored line should survive toggle off")
	}
}

func TestIncreaseQuantityOnAbsentLineYieldsBasePlusDelta(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)

	if _, err := svc.IncreaseQuantity(context.Background(), userID, "1", 2); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if store.qty["1"] != 3 {
		t.Fatalf("expected 1+2=3, got %d", store.qty["1"])
	}
}

func TestDecreaseQuantityToZeroRemovesLine(t *testing.T) {
	store := newStubCartStore()
	svc, registry, userID := newTestService(t, store)
	ctx := context.Background()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.IncreaseQuantity(ctx, userID, "1", 2); err != nil {
		t.Fatalf("increase: %v", err)
	}

	items, err := svc.DecreaseQuantity(ctx, userID, "1", 3)
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}

	state, _ := registry.Get(userID)
	if p, _ := state.Product("1"); p.IsInCart {
		t.Fatal("session flag not cleared after line removal")
	}
}

func TestQuantityNeverReadsBelowOne(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)
	ctx := context.Background()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	items, err := svc.DecreaseQuantity(ctx, userID, "1", 1)
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			t.Fatalf("observed quantity below 1: %+v", item)
		}
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)
	ctx := context.Background()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	items, err := svc.RemoveItem(ctx, userID, "1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}

	// second removal of the same id is a no-op
	if _, err := svc.RemoveItem(ctx, userID, "1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	// unknown id too
	if _, err := svc.RemoveItem(ctx, userID, "99"); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	if store.delCalls != 1 {
		t.Fatalf("expected a single remote delete, got %d", store.delCalls)
	}
}

func TestMutationsFailClosedWithoutSession(t *testing.T) {
	store := newStubCartStore()
	svc, err := NewService(ServiceParams{Store: store, States: appstate.NewRegistry()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.IncreaseQuantity(ctx, userID, "1", 1); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.setCalls != 0 || store.incrCalls != 0 {
		t.Fatal("remote writes issued without a session")
	}
}

func TestConcurrentIncrements(t *testing.T) {
	store := newStubCartStore()
	svc, _, userID := newTestService(t, store)
	ctx := context.Background()

	if _, _, err := svc.ToggleCart(ctx, userID, "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.IncreaseQuantity(ctx, userID, "1", 4); err != nil {
		t.Fatalf("seed increase: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.IncreaseQuantity(ctx, userID, "1", 1); err != nil {
				t.Errorf("increase: %v", err)
			}
		}()
	}
	wg.Wait()

	if store.qty["1"] != 7 {
		t.Fatalf("expected 5+1+1=7, got %d", store.qty["1"])
	}
}

func TestComputeTotal(t *testing.T) {
	if got := ComputeTotal(nil, DefaultShippingFee); got.Total != 0 {
		t.Fatalf("empty cart total should be 0, got %+v", got)
	}

	one := []appstate.Product{{Price: 10, Quantity: 2}}
	totals := ComputeTotal(one, DefaultShippingFee)
	if totals.Subtotal != 20 {
		t.Fatalf("expected subtotal 20, got %+v", totals)
	}
	if totals.Total != 50 {
		t.Fatalf("expected total 20+30=50, got %+v", totals)
	}

	two := []appstate.Product{{Price: 10, Quantity: 2}, {Price: 5, Quantity: 1}}
	totals = ComputeTotal(two, DefaultShippingFee)
	if totals.Subtotal != 25 || totals.Total != 55 {
		t.Fatalf("expected 25 + 30 = 55, got %+v", totals)
	}
}

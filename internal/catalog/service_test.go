package catalog

import (
	"context"
	"testing"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/google/uuid"
)

type stubGateway struct {
	products  []appstate.Product
	byBrand   []appstate.Product
	byTitle   []appstate.Product
	single    *appstate.Product
	brands    []string
	listErr   error
	lastBrand string
	lastTitle string
}

func (s *stubGateway) List(ctx context.Context) ([]appstate.Product, error) {
	return s.products, s.listErr
}

func (s *stubGateway) ListByBrand(ctx context.Context, brand string) ([]appstate.Product, error) {
	s.lastBrand = brand
	return s.byBrand, s.listErr
}

func (s *stubGateway) ListByTitle(ctx context.Context, title string) ([]appstate.Product, error) {
	s.lastTitle = title
	return s.byTitle, s.listErr
}

func (s *stubGateway) GetByID(ctx context.Context, id string) (*appstate.Product, error) {
	if s.single == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	copied := *s.single
	return &copied, nil
}

func (s *stubGateway) Brands(ctx context.Context) ([]string, error) {
	return s.brands, nil
}

type stubFavorites struct {
	stored  map[string]appstate.Product
	failSet error
}

func newStubFavorites() *stubFavorites {
	return &stubFavorites{stored: make(map[string]appstate.Product)}
}

func (s *stubFavorites) SetFavorite(ctx context.Context, userID uuid.UUID, product appstate.Product) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.stored[product.ID] = product
	return nil
}

func (s *stubFavorites) DeleteFavorite(ctx context.Context, userID uuid.UUID, productID string) error {
	delete(s.stored, productID)
	return nil
}

func (s *stubFavorites) GetAllFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	out := make([]appstate.Product, 0, len(s.stored))
	for _, p := range s.stored {
		out = append(out, p)
	}
	return out, nil
}

func newTestService(t *testing.T, gw *stubGateway, favs *stubFavorites) (Service, *appstate.Registry) {
	t.Helper()
	registry := appstate.NewRegistry()
	svc, err := NewService(ServiceParams{Gateway: gw, Favorites: favs, States: registry})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, registry
}

func TestLoadCatalogResetsFlags(t *testing.T) {
	gw := &stubGateway{products: []appstate.Product{
		{ID: "1", Title: "ring", IsFavorite: true, IsInCart: true, Quantity: 9},
	}}
	svc, _ := newTestService(t, gw, newStubFavorites())

	products, err := svc.LoadCatalog(context.Background(), uuid.New(), Filter{})
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	p := products[0]
	if p.IsFavorite || p.IsInCart || p.Quantity != 1 {
		t.Fatalf("expected reset flags, got %+v", p)
	}
}

func TestLoadCatalogFilterRouting(t *testing.T) {
	gw := &stubGateway{
		byBrand: []appstate.Product{{ID: "b"}},
		byTitle: []appstate.Product{{ID: "t"}},
	}
	svc, _ := newTestService(t, gw, newStubFavorites())
	ctx := context.Background()
	userID := uuid.New()

	products, err := svc.LoadCatalog(ctx, userID, Filter{Brand: "ShineOn"})
	if err != nil {
		t.Fatalf("load by brand: %v", err)
	}
	if gw.lastBrand != "ShineOn" || products[0].ID != "b" {
		t.Fatalf("brand filter not routed: %+v", products)
	}

	products, err = svc.LoadCatalog(ctx, userID, Filter{Title: "ring"})
	if err != nil {
		t.Fatalf("load by title: %v", err)
	}
	if gw.lastTitle != "ring" || products[0].ID != "t" {
		t.Fatalf("title filter not routed: %+v", products)
	}
}

func TestLoadCatalogFailureKeepsPriorState(t *testing.T) {
	gw := &stubGateway{products: []appstate.Product{{ID: "1"}}}
	svc, registry := newTestService(t, gw, newStubFavorites())
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	gw.listErr = pkgerrors.New(pkgerrors.CodeDependency, "catalog down")
	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err == nil {
		t.Fatal("expected error")
	}

	state, err := registry.Get(userID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(state.Products()) != 1 {
		t.Fatal("prior session products were clobbered on failure")
	}
}

func TestReconcileFavoritesIsAdditiveOnly(t *testing.T) {
	gw := &stubGateway{products: []appstate.Product{{ID: "1"}, {ID: "2"}}}
	favs := newStubFavorites()
	favs.stored["2"] = appstate.Product{ID: "2", IsFavorite: true}
	svc, registry := newTestService(t, gw, favs)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	// pre-set a local flag whose remote entry no longer exists
	state, _ := registry.Get(userID)
	state.SetFavoriteFlag("1", true)

	products, err := svc.ReconcileFavorites(ctx, userID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	byID := map[string]appstate.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	if !byID["2"].IsFavorite {
		t.Fatal("stored favorite not applied")
	}
	if !byID["1"].IsFavorite {
		t.Fatal("reconcile unexpectedly cleared a local flag; the pass is additive")
	}
}

func TestToggleFavoriteCommitsAfterRemoteWrite(t *testing.T) {
	gw := &stubGateway{products: []appstate.Product{{ID: "1", Title: "ring"}}}
	favs := newStubFavorites()
	svc, registry := newTestService(t, gw, favs)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	now, err := svc.ToggleFavorite(ctx, userID, "1")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !now {
		t.Fatal("expected favorite on")
	}
	if _, ok := favs.stored["1"]; !ok {
		t.Fatal("snapshot not written")
	}

	state, _ := registry.Get(userID)
	if p, _ := state.Product("1"); !p.IsFavorite {
		t.Fatal("local flag not committed")
	}

	now, err = svc.ToggleFavorite(ctx, userID, "1")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if now {
		t.Fatal("expected favorite off")
	}
	if _, ok := favs.stored["1"]; ok {
		t.Fatal("double toggle should net absence in the store")
	}
}

func TestToggleFavoriteRemoteFailureLeavesLocalUntouched(t *testing.T) {
	gw := &stubGateway{products: []appstate.Product{{ID: "1"}}}
	favs := newStubFavorites()
	favs.failSet = pkgerrors.New(pkgerrors.CodeDependency, "store down")
	svc, registry := newTestService(t, gw, favs)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := svc.ToggleFavorite(ctx, userID, "1"); err == nil {
		t.Fatal("expected error")
	}

	state, _ := registry.Get(userID)
	if p, _ := state.Product("1"); p.IsFavorite {
		t.Fatal("local flag committed despite remote failure")
	}
}

func TestToggleFavoriteRequiresSession(t *testing.T) {
	svc, _ := newTestService(t, &stubGateway{}, newStubFavorites())

	_, err := svc.ToggleFavorite(context.Background(), uuid.New(), "1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestGetProductOverlaysSessionFlags(t *testing.T) {
	gw := &stubGateway{
		products: []appstate.Product{{ID: "1", Title: "ring"}},
		single:   &appstate.Product{ID: "1", Title: "ring", Stock: 4},
	}
	svc, registry := newTestService(t, gw, newStubFavorites())
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.LoadCatalog(ctx, userID, Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	state, _ := registry.Get(userID)
	state.SetFavoriteFlag("1", true)
	state.SetInCartFlag("1", true, 2)

	product, err := svc.GetProduct(ctx, userID, "1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if !product.IsFavorite || !product.IsInCart || product.Quantity != 2 {
		t.Fatalf("session flags not overlaid: %+v", product)
	}
}

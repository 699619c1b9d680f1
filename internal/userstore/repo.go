package userstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	redisclient "github.com/HoaDang0803/ShineOn/pkg/redis"
	"github.com/google/uuid"
)

type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	HSet(ctx context.Context, key string, values ...any) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Eval(ctx context.Context, script string, keys []string, args ...any) (any, error)
}

type keyer interface {
	FavoritesKey(userID string) string
	CartKey(userID string) string
	CartQuantityKey(userID string) string
	ProfileKey(userID string) string
}

// Repository is the User Store Gateway: per-user keyed sub-trees holding
// denormalized product snapshots (favorites, cart) and the profile document.
type Repository struct {
	store store
	keyer keyer
}

// NewRepository wires the gateway over the shared Redis client.
func NewRepository(client *redisclient.Client) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Repository{store: client, keyer: client}, nil
}

// SetFavorite upserts the whole product snapshot under the favorites sub-tree.
func (r *Repository) SetFavorite(ctx context.Context, userID uuid.UUID, product appstate.Product) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode favorite snapshot")
	}
	if err := r.store.HSet(ctx, r.keyer.FavoritesKey(userID.String()), product.ID, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write favorite")
	}
	return nil
}

// DeleteFavorite removes the product from the favorites sub-tree. Deleting an
// absent entry is not an error.
func (r *Repository) DeleteFavorite(ctx context.Context, userID uuid.UUID, productID string) error {
	if err := r.store.HDel(ctx, r.keyer.FavoritesKey(userID.String()), productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete favorite")
	}
	return nil
}

// GetAllFavorites returns every favorite snapshot for the user.
func (r *Repository) GetAllFavorites(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	raw, err := r.store.HGetAll(ctx, r.keyer.FavoritesKey(userID.String()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
	}
	return decodeSnapshots(raw, "favorite")
}

// SetCartItem upserts the cart snapshot and its quantity counter.
func (r *Repository) SetCartItem(ctx context.Context, userID uuid.UUID, product appstate.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	product.IsInCart = true
	product.Quantity = quantity

	payload, err := json.Marshal(product)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	uid := userID.String()
	if err := r.store.HSet(ctx, r.keyer.CartKey(uid), product.ID, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart item")
	}
	if err := r.store.HSet(ctx, r.keyer.CartQuantityKey(uid), product.ID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart quantity")
	}
	return nil
}

// DeleteCartItem removes a cart line and its counter. Absent lines are a no-op.
func (r *Repository) DeleteCartItem(ctx context.Context, userID uuid.UUID, productID string) error {
	uid := userID.String()
	if err := r.store.HDel(ctx, r.keyer.CartKey(uid), productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	if err := r.store.HDel(ctx, r.keyer.CartQuantityKey(uid), productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart quantity")
	}
	return nil
}

// GetAllCartItems returns the cart snapshots with the quantity counters
// overlaid. A line without a counter reads as quantity 1.
func (r *Repository) GetAllCartItems(ctx context.Context, userID uuid.UUID) ([]appstate.Product, error) {
	uid := userID.String()
	raw, err := r.store.HGetAll(ctx, r.keyer.CartKey(uid))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	items, err := decodeSnapshots(raw, "cart")
	if err != nil {
		return nil, err
	}

	counters, err := r.store.HGetAll(ctx, r.keyer.CartQuantityKey(uid))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart quantities")
	}
	for i := range items {
		items[i].IsInCart = true
		items[i].Quantity = 1
		if rawQty, ok := counters[items[i].ID]; ok {
			if qty, convErr := strconv.Atoi(rawQty); convErr == nil && qty >= 1 {
				items[i].Quantity = qty
			}
		}
	}
	return items, nil
}

// IncreaseQuantity atomically raises the counter and returns the new value.
// An absent counter starts from base 1, so increasing an absent line by n
// yields 1+n.
func (r *Repository) IncreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error) {
	if delta < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity delta must be positive")
	}
	uid := userID.String()
	res, err := r.store.Eval(ctx, increaseQuantityScript,
		[]string{r.keyer.CartQuantityKey(uid)}, productID, delta)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increase quantity")
	}
	return evalInt(res)
}

// DecreaseQuantity atomically lowers the counter; a result of zero or less
// deletes the line and returns 0.
func (r *Repository) DecreaseQuantity(ctx context.Context, userID uuid.UUID, productID string, delta int) (int, error) {
	if delta < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity delta must be positive")
	}
	uid := userID.String()
	res, err := r.store.Eval(ctx, decreaseQuantityScript,
		[]string{r.keyer.CartQuantityKey(uid), r.keyer.CartKey(uid)}, productID, delta)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrease quantity")
	}
	return evalInt(res)
}

// SetProfile overwrites the whole profile document.
func (r *Repository) SetProfile(ctx context.Context, userID uuid.UUID, profile appstate.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode profile")
	}
	if err := r.store.Set(ctx, r.keyer.ProfileKey(userID.String()), payload, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write profile")
	}
	return nil
}

// GetProfile returns the profile document, or nil when none has been saved.
func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*appstate.Profile, error) {
	raw, err := r.store.Get(ctx, r.keyer.ProfileKey(userID.String()))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	var profile appstate.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode profile")
	}
	return &profile, nil
}

func decodeSnapshots(raw map[string]string, kind string) ([]appstate.Product, error) {
	items := make([]appstate.Product, 0, len(raw))
	for id, payload := range raw {
		var product appstate.Product
		if err := json.Unmarshal([]byte(payload), &product); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("decode %s snapshot %s", kind, id))
		}
		items = append(items, product)
	}
	return items, nil
}

func evalInt(res any) (int, error) {
	switch v := res.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected script result type %T", res))
	}
}

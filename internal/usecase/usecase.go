package usecase

import (
	"context"

	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/pkg/live"
)

type CatalogUC interface {
	List(filter domain.ProductFilter) []domain.Product
	GetByID(id string) (domain.Product, bool)
	Subscribe(ctx context.Context, identity domain.Identity, filter domain.ProductFilter, onChange func([]domain.Product)) (live.Subscription, error)
	Create(ctx context.Context, actor domain.Identity, req *CreateProductReq) (*domain.Product, error)
	Update(ctx context.Context, actor domain.Identity, id string, req *UpdateProductReq) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

type CartUC interface {
	Get(ctx context.Context, identity domain.Identity) (*domain.Cart, error)
	AddItem(ctx context.Context, identity domain.Identity, productID string) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, identity domain.Identity, productID string, quantity int) (*SetQuantityRes, error)
	RemoveItem(ctx context.Context, identity domain.Identity, productID string) error
	Clear(ctx context.Context, identity domain.Identity) error
	MergeOnLogin(ctx context.Context, from domain.Identity, to domain.Identity) (int, error)
	Subscribe(ctx context.Context, identity domain.Identity, onChange func(*domain.Cart)) (live.Subscription, error)
}

type WishlistUC interface {
	Toggle(ctx context.Context, identity domain.Identity, productID string) (*ToggleRes, error)
	IsMember(identity domain.Identity, productID string) bool
	List(ctx context.Context, identity domain.Identity) ([]domain.WishlistItem, error)
	Subscribe(ctx context.Context, identity domain.Identity, onChange func([]domain.WishlistItem)) (live.Subscription, error)
	RankMostWished(ctx context.Context, actor domain.Identity) ([]domain.MostWishedItem, error)
}

type OrderUC interface {
	Checkout(ctx context.Context, identity domain.Identity, shipping domain.ShippingInfo) (*domain.Order, error)
	Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Identity, id string) (*domain.Order, error)
	List(ctx context.Context, actor domain.Identity, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, actor domain.Identity, id string, status domain.OrderStatus) (*domain.Order, error)
	Subscribe(ctx context.Context, actor domain.Identity, onChange func([]domain.Order)) (live.Subscription, error)
}

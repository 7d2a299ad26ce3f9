package http

import (
	"time"

	_ "github.com/DRSN-tech/nest-store/docs" // Импорт описания API
	"github.com/DRSN-tech/nest-store/internal/auth"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// requestTimeout не применяется к потокам /stream.
const requestTimeout = 30 * time.Second

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Deps — зависимости обработчиков.
type Deps struct {
	Catalog      usecase.CatalogUC
	Cart         usecase.CartUC
	Wishlist     usecase.WishlistUC
	Orders       usecase.OrderUC
	Auth         *auth.Authenticator
	MaxImageSize int64
}

func (r *Router) Init(deps Deps) {
	r.router.Use(middleware.RequestID, middleware.RealIP, RequestLogger(r.logger), middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(Identity(deps.Auth))

		registerProductRoutes(v1, NewProductHandler(deps.Catalog, r.logger, deps.MaxImageSize))
		registerCartRoutes(v1, NewCartHandler(deps.Cart, r.logger))
		registerWishlistRoutes(v1, NewWishlistHandler(deps.Wishlist, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(deps.Orders, r.logger))
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/stream", h.streamProducts)
		pr.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(requestTimeout))
			g.Get("/", h.listProducts)
			g.Post("/", h.createProduct)
			g.Get("/{id}", h.getProduct)
			g.Patch("/{id}", h.updateProduct)
			g.Delete("/{id}", h.deleteProduct)
		})
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/stream", h.streamCart)
		cr.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(requestTimeout))
			g.Get("/", h.getCart)
			g.Delete("/", h.clearCart)
			g.Post("/items", h.addItem)
			g.Put("/items/{productID}", h.setQuantity)
			g.Delete("/items/{productID}", h.removeItem)
			g.Post("/merge", h.mergeCart)
		})
	})
}

func registerWishlistRoutes(router chi.Router, h *WishlistHandler) {
	router.With(middleware.Timeout(requestTimeout)).Get("/admin/wishlist/ranking", h.mostWished)
	router.Route("/wishlist", func(wr chi.Router) {
		wr.Get("/stream", h.streamWishlist)
		wr.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(requestTimeout))
			g.Get("/", h.listWishlist)
			g.Get("/{productID}", h.isMember)
			g.Post("/{productID}/toggle", h.toggle)
		})
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(ordr chi.Router) {
		ordr.Get("/stream", h.streamOrders)
		ordr.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(requestTimeout))
			g.Get("/", h.listOrders)
			g.Post("/", h.checkout)
			g.Get("/{id}", h.getOrder)
			g.Patch("/{id}/status", h.updateStatus)
		})
	})
}

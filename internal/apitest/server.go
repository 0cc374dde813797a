// internal/apitest/server.go

// Package apitest runs an in-memory marketplace API for store tests. It
// speaks the same envelope and route surface as the production API and
// keeps deterministic state the tests can seed and inspect.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/domain/order"
)

// testSigningKey signs the JWTs minted for tests.
const testSigningKey = "apitest-signing-key-0123456789abcdef"

// cartState mirrors the server-side cart aggregate.
type cartState struct {
	ID          *int64     `json:"id"`
	Items       []cartItem `json:"items"`
	TotalAmount int64      `json:"total_amount"`
}

type cartItem struct {
	ID         int64           `json:"id"`
	Product    catalog.Product `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice int64           `json:"total_price"`
}

type wishlistItem struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	ProductID int64            `json:"product_id"`
	Product   *catalog.Product `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// Server is the in-memory marketplace API.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	nextID     int64
	products   []catalog.Product
	categories []catalog.Category
	comments   []catalog.Comment
	discounts  []catalog.Discount
	deliveries []order.Delivery
	orders     []order.Order
	cart       cartState
	wishlist   []wishlistItem
	calls      map[string]int

	// FailStatus, when non-zero, makes every endpoint respond with that
	// status and FailMessage instead of its normal behavior.
	FailStatus  int
	FailMessage string
}

// New starts the mock API.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		nextID: 1000,
		cart:   cartState{Items: []cartItem{}},
		calls:  map[string]int{},
	}

	router := gin.New()
	router.Use(s.failureMode())

	s.registerUserRoutes(router)
	s.registerCatalogRoutes(router)
	s.registerCartRoutes(router)
	s.registerWishlistRoutes(router)
	s.registerOrderRoutes(router)
	s.registerAdminRoutes(router)

	s.Server = httptest.NewServer(router)
	return s
}

// BaseURL returns the server's API base URL.
func (s *Server) BaseURL() string {
	return s.URL
}

// Calls returns how many times the given "METHOD /route" pattern was hit.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// SeedProducts installs the product catalog.
func (s *Server) SeedProducts(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SeedCategories installs the category list.
func (s *Server) SeedCategories(categories []catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// SeedComments installs the review list.
func (s *Server) SeedComments(comments []catalog.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = comments
}

// SeedDiscounts installs the discount list.
func (s *Server) SeedDiscounts(discounts []catalog.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discounts = discounts
}

// SeedDeliveries installs the delivery list.
func (s *Server) SeedDeliveries(deliveries []order.Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = deliveries
}

// SeedOrders installs the order list.
func (s *Server) SeedOrders(orders []order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// MintToken issues a signed JWT for tests, expiring after ttl.
func MintToken(userID int64, ttl time.Duration) string {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     jwt.NewNumericDate(now),
		"exp":     jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(testSigningKey))
	return signed
}

// failureMode short-circuits every request when FailStatus is set, and
// records per-route call counts otherwise.
func (s *Server) failureMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		failStatus := s.FailStatus
		failMessage := s.FailMessage
		s.mu.Unlock()

		if failStatus != 0 {
			c.AbortWithStatusJSON(failStatus, gin.H{
				"message": failMessage,
				"data":    nil,
			})
			return
		}

		c.Next()

		s.mu.Lock()
		s.calls[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
	}
}

func respond(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    nil,
	})
}

func pathID(c *gin.Context, name string) int64 {
	id, _ := strconv.ParseInt(c.Param(name), 10, 64)
	return id
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

// ── Users ─────────────────────────────────────────────────────────────────

func (s *Server) registerUserRoutes(router *gin.Engine) {
	users := router.Group("/users")
	{
		users.POST("/signin", func(c *gin.Context) {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
				respondError(c, http.StatusBadRequest, "email and password are required")
				return
			}
			if req.Password == "wrong" {
				respondError(c, http.StatusUnauthorized, "invalid credentials")
				return
			}
			respond(c, "signed in", gin.H{
				"token": MintToken(7, time.Hour),
				"user": gin.H{
					"id":         7,
					"email":      req.Email,
					"first_name": "Test",
					"last_name":  "User",
					"roles":      []string{"user"},
				},
			})
		})

		users.POST("/add", func(c *gin.Context) {
			var req struct {
				Email     string `json:"email"`
				Password  string `json:"password"`
				FirstName string `json:"first_name"`
				LastName  string `json:"last_name"`
			}
			if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
				respondError(c, http.StatusBadRequest, "email and password are required")
				return
			}
			respond(c, "account created", gin.H{
				"token": MintToken(8, time.Hour),
				"user": gin.H{
					"id":         8,
					"email":      req.Email,
					"first_name": req.FirstName,
					"last_name":  req.LastName,
					"roles":      []string{"user"},
				},
			})
		})
	}
}

// ── Catalog ───────────────────────────────────────────────────────────────

func (s *Server) registerCatalogRoutes(router *gin.Engine) {
	products := router.Group("/products")
	{
		products.GET("/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "products", s.products)
		})

		products.GET("/product/:id/product", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, p := range s.products {
				if p.ID == id {
					respond(c, "product", p)
					return
				}
			}
			respondError(c, http.StatusNotFound, "product not found")
		})
	}

	comments := router.Group("/comments")
	{
		comments.GET("/approved/:productId", func(c *gin.Context) {
			productID := pathID(c, "productId")
			s.mu.Lock()
			defer s.mu.Unlock()
			approved := []catalog.Comment{}
			for _, comment := range s.comments {
				if comment.ProductID == productID && comment.Approved {
					approved = append(approved, comment)
				}
			}
			respond(c, "comments", approved)
		})

		comments.POST("/add", func(c *gin.Context) {
			var req struct {
				ProductID int64  `json:"product_id"`
				Content   string `json:"content"`
				Rating    int    `json:"rating"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid comment")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.comments = append(s.comments, catalog.Comment{
				ID:        s.allocID(),
				ProductID: req.ProductID,
				Content:   req.Content,
				Rating:    req.Rating,
				Approved:  false,
				CreatedAt: time.Now().UTC(),
			})
			respond(c, "comment submitted", nil)
		})

		comments.POST("/rating", func(c *gin.Context) {
			respond(c, "rating submitted", nil)
		})
	}
}

// ── Cart ──────────────────────────────────────────────────────────────────

func (s *Server) registerCartRoutes(router *gin.Engine) {
	carts := router.Group("/carts")
	{
		carts.GET("/my-cart", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "cart", s.cart)
		})

		carts.POST("/add-item", func(c *gin.Context) {
			productID, _ := strconv.ParseInt(c.Query("productId"), 10, 64)
			quantity, _ := strconv.Atoi(c.Query("quantity"))
			if quantity < 1 {
				quantity = 1
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			var product *catalog.Product
			for i := range s.products {
				if s.products[i].ID == productID {
					product = &s.products[i]
					break
				}
			}
			if product == nil {
				respondError(c, http.StatusNotFound, "product not found")
				return
			}

			if s.cart.ID == nil {
				id := s.allocID()
				s.cart.ID = &id
			}

			merged := false
			for i := range s.cart.Items {
				if s.cart.Items[i].Product.ID == productID {
					s.cart.Items[i].Quantity += quantity
					s.cart.Items[i].TotalPrice = int64(s.cart.Items[i].Quantity) * product.Price
					merged = true
					break
				}
			}
			if !merged {
				s.cart.Items = append(s.cart.Items, cartItem{
					ID:         s.allocID(),
					Product:    *product,
					Quantity:   quantity,
					TotalPrice: int64(quantity) * product.Price,
				})
			}
			s.recalcCart()
			respond(c, "item added", s.cart)
		})

		carts.DELETE("/clear", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.cart = cartState{Items: []cartItem{}}
			respond(c, "cart cleared", nil)
		})

		carts.DELETE("/:cartId/items/:productId", func(c *gin.Context) {
			cartID := pathID(c, "cartId")
			productID := pathID(c, "productId")

			s.mu.Lock()
			defer s.mu.Unlock()
			if s.cart.ID == nil || *s.cart.ID != cartID {
				respondError(c, http.StatusNotFound, "cart not found")
				return
			}
			for i := range s.cart.Items {
				if s.cart.Items[i].Product.ID == productID {
					s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
					break
				}
			}
			s.recalcCart()
			respond(c, "item removed", nil)
		})

		carts.POST("/transfer", func(c *gin.Context) {
			var req struct {
				Items []struct {
					ProductID int64 `json:"product_id"`
					Quantity  int   `json:"quantity"`
				} `json:"items"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid transfer request")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			if s.cart.ID == nil {
				id := s.allocID()
				s.cart.ID = &id
			}
			for _, incoming := range req.Items {
				for i := range s.products {
					if s.products[i].ID == incoming.ProductID {
						s.cart.Items = append(s.cart.Items, cartItem{
							ID:         s.allocID(),
							Product:    s.products[i],
							Quantity:   incoming.Quantity,
							TotalPrice: int64(incoming.Quantity) * s.products[i].Price,
						})
					}
				}
			}
			s.recalcCart()
			respond(c, "cart transferred", s.cart)
		})
	}
}

func (s *Server) recalcCart() {
	var total int64
	for _, item := range s.cart.Items {
		total += item.TotalPrice
	}
	s.cart.TotalAmount = total
}

// ── Wishlist ──────────────────────────────────────────────────────────────

func (s *Server) registerWishlistRoutes(router *gin.Engine) {
	wishlist := router.Group("/wishlist")
	{
		wishlist.GET("/:userId", func(c *gin.Context) {
			userID := pathID(c, "userId")
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "wishlist", s.wishlistFor(userID))
		})

		wishlist.POST("/add", func(c *gin.Context) {
			productID, _ := strconv.ParseInt(c.Query("productId"), 10, 64)

			s.mu.Lock()
			defer s.mu.Unlock()
			// The mock scopes all wishlist writes to user 7.
			for _, item := range s.wishlist {
				if item.ProductID == productID {
					respond(c, "already on wishlist", s.wishlistFor(7))
					return
				}
			}
			s.wishlist = append(s.wishlist, wishlistItem{
				ID:        s.allocID(),
				UserID:    7,
				ProductID: productID,
				AddedAt:   time.Now().UTC(),
			})
			respond(c, "added to wishlist", s.wishlistFor(7))
		})

		wishlist.DELETE("/:userId/items/:productId", func(c *gin.Context) {
			userID := pathID(c, "userId")
			productID := pathID(c, "productId")

			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.wishlist {
				if s.wishlist[i].UserID == userID && s.wishlist[i].ProductID == productID {
					s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
					break
				}
			}
			respond(c, "removed from wishlist", s.wishlistFor(userID))
		})
	}
}

func (s *Server) wishlistFor(userID int64) []wishlistItem {
	items := []wishlistItem{}
	for _, item := range s.wishlist {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items
}

// ── Orders ────────────────────────────────────────────────────────────────

func (s *Server) registerOrderRoutes(router *gin.Engine) {
	orders := router.Group("/orders")
	{
		orders.POST("/create", func(c *gin.Context) {
			var req struct {
				ShippingAddress order.Address `json:"shipping_address"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid order")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			created := order.Order{
				ID:              s.allocID(),
				UserID:          7,
				Status:          order.StatusPending,
				ShippingAddress: req.ShippingAddress,
				TotalAmount:     s.cart.TotalAmount,
				CreatedAt:       time.Now().UTC(),
			}
			for _, item := range s.cart.Items {
				created.Items = append(created.Items, order.Item{
					ID:        s.allocID(),
					ProductID: item.Product.ID,
					Name:      item.Product.Name,
					Quantity:  item.Quantity,
					UnitPrice: item.Product.Price,
				})
			}
			s.orders = append(s.orders, created)
			s.cart = cartState{Items: []cartItem{}}
			respond(c, "order created", created)
		})

		orders.POST("/:id/complete-payment", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.orders {
				if s.orders[i].ID == id {
					s.orders[i].Status = order.StatusProcessing
					respond(c, "payment completed", s.orders[i])
					return
				}
			}
			respondError(c, http.StatusNotFound, "order not found")
		})

		orders.GET("/my-orders", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "orders", s.orders)
		})

		orders.GET("/admin/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "orders", s.orders)
		})

		orders.GET("/:id/invoice", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4 test invoice"))
		})

		orders.POST("/:id/update-status", func(c *gin.Context) {
			id := pathID(c, "id")
			status := order.Status(c.Query("status"))
			if !status.Valid() {
				respondError(c, http.StatusBadRequest, "unknown status")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.orders {
				if s.orders[i].ID == id {
					s.orders[i].Status = status
					respond(c, "status updated", s.orders[i])
					return
				}
			}
			respondError(c, http.StatusNotFound, "order not found")
		})
	}
}

// ── Admin resources ───────────────────────────────────────────────────────

func (s *Server) registerAdminRoutes(router *gin.Engine) {
	products := router.Group("/products")
	{
		products.POST("/add", func(c *gin.Context) {
			var req catalog.Product
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid product")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			req.ID = s.allocID()
			s.products = append(s.products, req)
			respond(c, "product created", req)
		})

		products.POST("/:id/update", func(c *gin.Context) {
			id := pathID(c, "id")
			var req catalog.Product
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid product")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.products {
				if s.products[i].ID == id {
					req.ID = id
					s.products[i] = req
					respond(c, "product updated", req)
					return
				}
			}
			respondError(c, http.StatusNotFound, "product not found")
		})

		products.DELETE("/:id/delete", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.products {
				if s.products[i].ID == id {
					s.products = append(s.products[:i], s.products[i+1:]...)
					respond(c, "product deleted", nil)
					return
				}
			}
			respondError(c, http.StatusNotFound, "product not found")
		})
	}

	categories := router.Group("/categories")
	{
		categories.GET("/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "categories", s.categories)
		})

		categories.POST("/add", func(c *gin.Context) {
			var req catalog.Category
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid category")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			req.ID = s.allocID()
			s.categories = append(s.categories, req)
			respond(c, "category created", req)
		})

		categories.POST("/:id/update", func(c *gin.Context) {
			id := pathID(c, "id")
			var req catalog.Category
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid category")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.categories {
				if s.categories[i].ID == id {
					req.ID = id
					s.categories[i] = req
					respond(c, "category updated", req)
					return
				}
			}
			respondError(c, http.StatusNotFound, "category not found")
		})

		categories.DELETE("/:id/delete", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			// A category still referenced by a product fails like the real API.
			for _, p := range s.products {
				if p.CategoryID == id {
					respondError(c, http.StatusInternalServerError, "foreign key constraint violation")
					return
				}
			}
			for i := range s.categories {
				if s.categories[i].ID == id {
					s.categories = append(s.categories[:i], s.categories[i+1:]...)
					respond(c, "category deleted", nil)
					return
				}
			}
			respondError(c, http.StatusNotFound, "category not found")
		})
	}

	comments := router.Group("/comments")
	{
		comments.GET("/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "comments", s.comments)
		})

		comments.POST("/approve/:id", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.comments {
				if s.comments[i].ID == id {
					s.comments[i].Approved = true
					respond(c, "comment approved", s.comments[i])
					return
				}
			}
			respondError(c, http.StatusNotFound, "comment not found")
		})

		comments.POST("/delete/:id", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.comments {
				if s.comments[i].ID == id {
					s.comments = append(s.comments[:i], s.comments[i+1:]...)
					respond(c, "comment deleted", nil)
					return
				}
			}
			respondError(c, http.StatusNotFound, "comment not found")
		})
	}

	discounts := router.Group("/discounts")
	{
		discounts.GET("/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "discounts", s.discounts)
		})

		discounts.POST("/create", func(c *gin.Context) {
			var req catalog.Discount
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "invalid discount")
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			req.ID = s.allocID()
			req.Active = true
			s.discounts = append(s.discounts, req)
			respond(c, "discount created", req)
		})

		discounts.POST("/:id/deactivate", func(c *gin.Context) {
			id := pathID(c, "id")
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.discounts {
				if s.discounts[i].ID == id {
					s.discounts[i].Active = false
					respond(c, "discount deactivated", s.discounts[i])
					return
				}
			}
			respondError(c, http.StatusNotFound, "discount not found")
		})
	}

	deliveries := router.Group("/deliveries")
	{
		deliveries.GET("/all", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			respond(c, "deliveries", s.deliveries)
		})

		deliveries.POST("/:id/update-status", func(c *gin.Context) {
			id := pathID(c, "id")
			status := order.Status(c.Query("status"))
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.deliveries {
				if s.deliveries[i].ID == id {
					s.deliveries[i].Status = status
					s.deliveries[i].UpdatedAt = time.Now().UTC()
					respond(c, "delivery updated", s.deliveries[i])
					return
				}
			}
			respondError(c, http.StatusNotFound, "delivery not found")
		})
	}

	router.GET("/analytics/sales", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var revenue int64
		byStatus := map[string]int64{}
		for _, o := range s.orders {
			revenue += o.TotalAmount
			byStatus[string(o.Status)]++
		}
		respond(c, "sales report", gin.H{
			"total_orders":    len(s.orders),
			"total_revenue":   revenue,
			"sales_by_status": byStatus,
		})
	})
}

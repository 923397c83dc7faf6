package main

import (
	"html/template"
	"log"
	"os"
	"time"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/config"
	"artecomcarinho/internal/handlers"
	"artecomcarinho/internal/services"
	"artecomcarinho/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	// Carrinho e sessão: Redis quando configurado, arquivo JSON local
	// caso contrário.
	var st store.Store
	if cfg.RedisAddr != "" {
		redisStore, err := store.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Redis indisponível: %v", err)
		}
		st = redisStore
		log.Printf("Armazenamento de sessões: Redis (%s)", cfg.RedisAddr)
	} else {
		jsonStore, err := store.NewJSONStore(cfg.DataFile)
		if err != nil {
			log.Fatalf("Arquivo de dados não pôde ser aberto: %v", err)
		}
		st = jsonStore
		log.Printf("Armazenamento de sessões: arquivo %s", cfg.DataFile)
	}

	apiClient := api.NewClient(cfg.APIBaseURL)
	uploader := api.NewUploader(cfg.UploadURL, cfg.UploadKey, nil)
	cartService := services.NewCartService(st)
	sessionService := services.NewSessionService(st, cfg.CustomerTimeout, cfg.StaffTimeout)
	hub := services.NewNotificationHub()
	poller := services.NewStatusPoller(apiClient, hub, cfg.PollInterval)
	emailService := services.NewEmailService(cfg)

	// Sessões que sobreviveram a um reinício voltam a ser observadas; sem
	// isso os pedidos delas ficariam sem avisos até o próximo login.
	for sessionID, session := range sessionService.Live(time.Now()) {
		poller.Enable(sessionID, session.Token)
	}

	h := handlers.NewHandler(apiClient, uploader, cartService, sessionService, poller, hub, emailService, cfg)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(h.SessionMiddleware())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Cada página tem o próprio conjunto de templates sobre o base.html.
	templates := map[string]*template.Template{}
	templateFiles := map[string][]string{
		"home.html":               {"templates/home.html", "templates/base.html"},
		"products.html":           {"templates/products.html", "templates/base.html"},
		"product_detail.html":     {"templates/product_detail.html", "templates/base.html"},
		"cart.html":               {"templates/cart.html", "templates/base.html"},
		"checkout.html":           {"templates/checkout.html", "templates/base.html"},
		"order_success.html":      {"templates/order_success.html", "templates/base.html"},
		"orders.html":             {"templates/orders.html", "templates/base.html"},
		"order_detail.html":       {"templates/order_detail.html", "templates/base.html"},
		"order_tracking.html":     {"templates/order_tracking.html", "templates/base.html"},
		"about.html":              {"templates/about.html", "templates/base.html"},
		"contact.html":            {"templates/contact.html", "templates/base.html"},
		"login.html":              {"templates/login.html", "templates/base.html"},
		"register.html":           {"templates/register.html", "templates/base.html"},
		"forgot_password.html":    {"templates/forgot_password.html", "templates/base.html"},
		"reset_password.html":     {"templates/reset_password.html", "templates/base.html"},
		"profile.html":            {"templates/profile.html", "templates/base.html"},
		"admin.html":              {"templates/admin.html", "templates/base.html"},
		"admin_products.html":     {"templates/admin_products.html", "templates/base.html"},
		"admin_orders.html":       {"templates/admin_orders.html", "templates/base.html"},
		"admin_order_detail.html": {"templates/admin_order_detail.html", "templates/base.html"},
		"admin_production.html":   {"templates/admin_production.html", "templates/base.html"},
		"admin_stock.html":        {"templates/admin_stock.html", "templates/base.html"},
		"admin_customers.html":    {"templates/admin_customers.html", "templates/base.html"},
		"admin_reports.html":      {"templates/admin_reports.html", "templates/base.html"},
	}
	for name, files := range templateFiles {
		tmpl, err := template.New(name).Funcs(handlers.TemplateFuncs).ParseFiles(files...)
		if err != nil {
			log.Fatalf("Template não pôde ser carregado %s: %v", name, err)
		}
		templates[name] = tmpl
	}
	r.HTMLRender = &handlers.HTMLRenderer{Templates: templates}

	r.Static("/static", "./static")
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.File("./static/favicon.ico")
	})

	// Vitrine
	r.GET("/", h.HomePage)
	r.GET("/products", h.ProductsPage)
	r.GET("/products/:id", h.ProductDetailPage)
	r.GET("/about", h.AboutPage)
	r.GET("/contact", h.ContactPage)
	r.POST("/contact", h.HandleContact)

	// Carrinho
	r.GET("/cart", h.CartPage)
	r.POST("/cart/add", h.AddToCart)
	r.POST("/cart/update", h.UpdateCartItem)
	r.POST("/cart/customize", h.CustomizeCartItem)
	r.POST("/cart/remove", h.RemoveFromCart)
	r.GET("/cart/count", h.GetCartCount)
	r.GET("/checkout", h.CheckoutPage)
	r.POST("/checkout", h.HandleCheckout)
	r.GET("/order-success", h.OrderSuccessPage)

	// Acompanhamento público de pedido
	r.GET("/track", h.OrderTrackingPage)
	r.POST("/track", h.TrackOrder)

	// Autenticação
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.HandleLogin)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.HandleRegister)
	r.GET("/logout", h.UserLogout)
	r.GET("/forgot-password", h.ForgotPasswordPage)
	r.POST("/forgot-password", h.HandleForgotPassword)
	r.GET("/reset-password", h.ResetPasswordPage)
	r.POST("/reset-password", h.HandleResetPassword)
	r.GET("/auth/social/:provider", h.SocialLogin)
	r.GET("/auth/callback", h.OAuthCallback)

	// Avisos de mudança de situação de pedido
	r.GET("/notifications", h.GetNotifications)

	// Conta (protegido)
	user := r.Group("/profile")
	user.Use(h.AuthMiddleware())
	{
		user.GET("", h.ProfilePage)
		user.POST("", h.HandleProfileUpdate)
	}

	// Pedidos do cliente (protegido)
	orders := r.Group("/orders")
	orders.Use(h.AuthMiddleware())
	{
		orders.GET("", h.OrdersPage)
		orders.GET("/:id", h.OrderDetailPage)
		orders.POST("/:id/cancel", h.CancelOrder)
	}

	// Painel do ateliê (protegido por papel)
	admin := r.Group("/admin")
	admin.Use(h.AdminMiddleware())
	{
		admin.GET("", h.AdminPage)
		admin.GET("/products", h.AdminProductsPage)
		admin.POST("/products/add", h.AddProduct)
		admin.POST("/products/update", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.GET("/orders", h.AdminOrdersPage)
		admin.GET("/orders/:id", h.AdminOrderDetailPage)
		admin.POST("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.POST("/orders/:id/cancel", h.AdminCancelOrder)
		admin.GET("/production", h.ProductionBoardPage)
		admin.POST("/production/:id/next", h.ProductionNext)
		admin.POST("/production/:id/prev", h.ProductionPrev)
		admin.GET("/stock", h.StockPage)
		admin.GET("/customers", h.CustomersPage)
		admin.GET("/reports", h.ReportsPage)
		admin.GET("/reports/orders.csv", h.ExportOrdersCSV)
		admin.GET("/reports/top-products.csv", h.ExportTopProductsCSV)
	}

	// Varredor de inatividade: remove sessões paradas além do limite do
	// papel e desliga o poller delas.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			for _, sessionID := range sessionService.Sweep(time.Now()) {
				poller.Disable(sessionID)
				hub.Drop(sessionID)
			}
		}
	}()

	log.Printf("Arte com Carinho no ar em %s (backend: %s)", cfg.ListenAddr, cfg.APIBaseURL)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Servidor não pôde iniciar: %v", err)
	}
}

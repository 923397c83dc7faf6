package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/config"
	"artecomcarinho/internal/models"
	"artecomcarinho/internal/services"
	"artecomcarinho/internal/store"
)

// stubRender, responde o nome do template no corpo, sem executar HTML.
type stubRender struct{}

func (stubRender) Instance(name string, data interface{}) render.Render {
	return render.Data{ContentType: "text/html; charset=utf-8", Data: []byte(name)}
}

type testApp struct {
	router   *gin.Engine
	cart     *services.CartService
	sessions *services.SessionService
	hub      *services.NotificationHub
}

func newTestApp(t *testing.T, backend http.HandlerFunc) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	st, err := store.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	cfg := config.Default()
	apiClient := api.NewClient(server.URL)
	cart := services.NewCartService(st)
	sessions := services.NewSessionService(st, cfg.CustomerTimeout, cfg.StaffTimeout)
	hub := services.NewNotificationHub()
	poller := services.NewStatusPoller(apiClient, hub, time.Minute)
	t.Cleanup(poller.Stop)
	email := services.NewEmailService(cfg)

	h := NewHandler(apiClient, api.NewUploader("", "", nil), cart, sessions, poller, hub, email, cfg)

	r := gin.New()
	r.HTMLRender = stubRender{}
	r.Use(h.SessionMiddleware())

	r.POST("/cart/add", h.AddToCart)
	r.POST("/checkout", h.HandleCheckout)
	r.GET("/notifications", h.GetNotifications)

	orders := r.Group("/orders")
	orders.Use(h.AuthMiddleware())
	orders.GET("", h.OrdersPage)

	admin := r.Group("/admin")
	admin.Use(h.AdminMiddleware())
	admin.GET("", h.AdminPage)

	return &testApp{router: r, cart: cart, sessions: sessions, hub: hub}
}

func (a *testApp) get(path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(path, sessionID string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func checkoutForm() url.Values {
	return url.Values{
		"customerName": {"Maria Silva"},
		"email":        {"maria@example.com"},
		"phone":        {"11999990000"},
		"address":      {"Rua das Flores, 10"},
	}
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/orders", r.URL.Path)
		w.Write([]byte(`{"id":7,"orderNumber":"AC-0007"}`))
	})

	require.NoError(t, app.cart.AddItem("sid", models.CartItem{ProductID: 10, Name: "Fralda de boca", Price: 35.9, Quantity: 2, SelectedSize: "M"}))

	w := app.postForm("/checkout", "sid", checkoutForm())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/order-success?number=AC-0007&id=7", w.Header().Get("Location"))
	assert.Equal(t, 0, app.cart.Count("sid"))
}

func TestCheckoutFailurePreservesCart(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"estoque insuficiente"}`))
	})

	require.NoError(t, app.cart.AddItem("sid", models.CartItem{ProductID: 10, Price: 35.9, Quantity: 2}))

	w := app.postForm("/checkout", "sid", checkoutForm())

	// A página de checkout volta com o erro e o carrinho fica como estava.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "checkout.html", w.Body.String())
	assert.Equal(t, 2, app.cart.Count("sid"))
}

func TestCheckoutWithEmptyCartRedirects(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("o backend não deveria ser chamado com carrinho vazio")
	})

	w := app.postForm("/checkout", "sid", checkoutForm())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestAddToCartUsesBackendPrice(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/10", r.URL.Path)
		w.Write([]byte(`{"id":10,"name":"Fralda de boca","price":35.9,"imageUrl":"/img/fralda.jpg"}`))
	})

	form := url.Values{
		"productId": {"10"},
		"quantity":  {"2"},
		"size":      {"M"},
		"color":     {"Rosa"},
		"price":     {"0.01"}, // campo forjado, deve ser ignorado
	}
	w := app.postForm("/cart/add", "sid", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	cart := app.cart.GetCart("sid")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 35.9, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAuthMiddlewareRedirectsToLogin(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})

	w := app.get("/orders", "sid-anonimo")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?return=%2Forders", w.Header().Get("Location"))
}

func TestExpiredCustomerSessionRedirectsWithIndicator(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{
		Token:        "tok",
		Role:         models.RoleCustomer,
		LastActivity: time.Now().Add(-11 * time.Minute).UnixMilli(),
	}))

	w := app.get("/orders", "sid")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?expired=1&return=%2Forders", w.Header().Get("Location"))
	// A sessão cai na mesma requisição, sem esperar o varredor.
	assert.Nil(t, app.sessions.GetSession("sid"))
}

func TestActiveSessionIsNotExpiredByGuard(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{
		Token:        "tok",
		Role:         models.RoleCustomer,
		LastActivity: time.Now().Add(-5 * time.Minute).UnixMilli(),
	}))

	w := app.get("/orders", "sid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders.html", w.Body.String())
}

func TestStaffSessionSurvivesCustomerThreshold(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/stats/summary":
			w.Write([]byte(`{"totalOrders":0,"totalRevenue":0}`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	// Inatividade que derruba um cliente não derruba quem opera o painel.
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{
		Token:        "tok",
		Role:         models.RoleEmployee,
		LastActivity: time.Now().Add(-11 * time.Minute).UnixMilli(),
	}))

	w := app.get("/admin", "sid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin.html", w.Body.String())
}

func TestAdminMiddlewareRejectsCustomer(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{Token: "tok", Role: models.RoleCustomer}))

	w := app.get("/admin", "sid")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminMiddlewareAcceptsEmployee(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/stats/summary":
			w.Write([]byte(`{"totalOrders":3,"totalRevenue":420.5}`))
		case "/products/stats/top":
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`{}`))
		}
	})
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{Token: "tok", Role: models.RoleEmployee}))

	w := app.get("/admin", "sid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin.html", w.Body.String())
}

func TestNotificationsEmptyForAnonymous(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	app.hub.Push("sid", models.Notification{OrderID: 1, Message: "não deveria vazar"})

	w := app.get("/notifications", "sid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())
}

func TestNotificationsDrainOnRead(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, app.sessions.SaveSession("sid", &models.AuthSession{Token: "tok", Role: models.RoleCustomer}))
	app.hub.Push("sid", models.Notification{OrderID: 5, Status: models.StatusShipped, Message: "Seu pedido #5 foi enviado!"})

	w := app.get("/notifications", "sid")
	assert.Contains(t, w.Body.String(), "Seu pedido #5 foi enviado!")

	// Segunda leitura volta vazia: exibe uma vez e descarta.
	w = app.get("/notifications", "sid")
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())
}

package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/config"
	"artecomcarinho/internal/models"
	"artecomcarinho/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Nome do cookie que identifica o navegador. Vale para visitantes anônimos
// também: o carrinho existe antes do login.
const sessionCookie = "session_id"

// Handler, atende as requisições HTTP. Todas as dependências chegam pelo
// construtor; não há estado global.
type Handler struct {
	api      *api.Client
	uploader *api.Uploader
	cart     *services.CartService
	sessions *services.SessionService
	poller   *services.StatusPoller
	hub      *services.NotificationHub
	email    *services.EmailService
	cfg      *config.Config
}

// NewHandler, cria o Handler com todas as dependências.
func NewHandler(apiClient *api.Client, uploader *api.Uploader, cart *services.CartService,
	sessions *services.SessionService, poller *services.StatusPoller,
	hub *services.NotificationHub, email *services.EmailService, cfg *config.Config) *Handler {
	return &Handler{
		api:      apiClient,
		uploader: uploader,
		cart:     cart,
		sessions: sessions,
		poller:   poller,
		hub:      hub,
		email:    email,
		cfg:      cfg,
	}
}

// SessionMiddleware, garante o cookie de sessão e registra atividade quando
// há usuário logado. Sessão parada além do limite do papel é encerrada aqui
// mesmo, antes que a requisição conte como atividade nova. Roda em todas as
// rotas.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(sessionCookie, sessionID, 30*24*3600, "/", "", false, true)
		}
		c.Set("sessionID", sessionID)

		if session := h.sessions.GetSession(sessionID); session != nil {
			if h.sessions.Expired(session, time.Now()) {
				h.poller.Disable(sessionID)
				h.hub.Drop(sessionID)
				h.sessions.ClearSession(sessionID)
				c.Set("sessionExpired", true)
				log.Printf("SessionMiddleware - sessão %s expirada por inatividade (papel %s)", sessionID, session.Role)
			} else {
				h.sessions.TouchActivity(sessionID)
			}
		}
		c.Next()
	}
}

// loginRedirect, monta a URL de login guardando a rota pedida para voltar
// depois. Sessão derrubada por inatividade leva o indicador junto.
func loginRedirect(c *gin.Context) string {
	returnTo := url.QueryEscape(c.Request.URL.RequestURI())
	if c.GetBool("sessionExpired") {
		return "/login?expired=1&return=" + returnTo
	}
	return "/login?return=" + returnTo
}

// AuthMiddleware, protege as rotas de cliente logado. Sem sessão, redireciona
// para o login.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.currentSession(c) == nil {
			c.Redirect(http.StatusSeeOther, loginRedirect(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware, protege o painel. Exige sessão com papel de operação.
func (h *Handler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := h.currentSession(c)
		if session == nil {
			c.Redirect(http.StatusSeeOther, loginRedirect(c))
			c.Abort()
			return
		}
		if !h.sessions.IsAdmin(session) {
			log.Printf("AdminMiddleware - acesso negado ao painel para %s (papel %s)", session.Email, session.Role)
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionID, retorna o ID de sessão colocado pelo middleware.
func (h *Handler) sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}

// currentSession, retorna a sessão autenticada do navegador, ou nil.
func (h *Handler) currentSession(c *gin.Context) *models.AuthSession {
	return h.sessions.GetSession(h.sessionID(c))
}

// userAPI, retorna o cliente da API preso ao token da sessão atual. Sem
// sessão, volta o cliente sem Authorization.
func (h *Handler) userAPI(c *gin.Context) *api.Client {
	if session := h.currentSession(c); session != nil {
		return h.api.WithToken(session.Token)
	}
	return h.api
}

// baseData, monta os dados comuns a todas as páginas (cabeçalho, selo do
// carrinho, usuário logado).
func (h *Handler) baseData(c *gin.Context, title string) gin.H {
	session := h.currentSession(c)
	data := gin.H{
		"title":     title,
		"cartCount": h.cart.Count(h.sessionID(c)),
	}
	if session != nil {
		data["userName"] = session.Name
		data["isAdmin"] = h.sessions.IsAdmin(session)
		data["loggedIn"] = true
	}
	return data
}

// GetNotifications, entrega os avisos pendentes da sessão. A fila esvazia
// na leitura; a página exibe e descarta.
func (h *Handler) GetNotifications(c *gin.Context) {
	if h.currentSession(c) == nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []models.Notification{}})
		return
	}
	pending := h.hub.Drain(h.sessionID(c))
	if pending == nil {
		pending = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": pending})
}

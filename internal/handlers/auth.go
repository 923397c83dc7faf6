package handlers

import (
	"log"
	"net/http"
	"time"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoginPage, mostra o formulário de login. Aceita ?return= para voltar à
// página pedida e ?expired=1 para avisar que a sessão caiu por inatividade.
func (h *Handler) LoginPage(c *gin.Context) {
	data := h.baseData(c, "Entrar")
	data["returnTo"] = c.Query("return")
	data["captchaSiteKey"] = h.cfg.CaptchaSiteKey
	if c.Query("expired") == "1" {
		data["notice"] = "Sua sessão expirou por inatividade. Entre novamente."
	}
	c.HTML(http.StatusOK, "login.html", data)
}

// HandleLogin, autentica no backend e abre a sessão local.
func (h *Handler) HandleLogin(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.baseData(c, "Entrar")
		data["error"] = "Informe e-mail e senha."
		data["returnTo"] = c.PostForm("returnTo")
		data["captchaSiteKey"] = h.cfg.CaptchaSiteKey
		c.HTML(http.StatusBadRequest, "login.html", data)
		return
	}

	resp, err := h.api.Login(c.Request.Context(), form.Email, form.Password, form.CaptchaToken)
	if err != nil {
		log.Printf("HandleLogin - falha para %s: %v", form.Email, err)
		data := h.baseData(c, "Entrar")
		if api.KindOf(err) == api.KindAuth {
			data["error"] = "E-mail ou senha incorretos."
		} else {
			data["error"] = api.UserMessage(err)
		}
		data["returnTo"] = c.PostForm("returnTo")
		data["captchaSiteKey"] = h.cfg.CaptchaSiteKey
		c.HTML(http.StatusUnauthorized, "login.html", data)
		return
	}

	h.openSession(c, resp)

	returnTo := c.PostForm("returnTo")
	if returnTo == "" {
		if h.sessions.IsAdmin(h.currentSession(c)) {
			returnTo = "/admin"
		} else {
			returnTo = "/"
		}
	}
	c.Redirect(http.StatusSeeOther, returnTo)
}

// RegisterPage, mostra o formulário de cadastro.
func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.baseData(c, "Criar Conta"))
}

// HandleRegister, cria a conta no backend e já entra.
func (h *Handler) HandleRegister(c *gin.Context) {
	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.baseData(c, "Criar Conta")
		data["error"] = "Preencha todos os campos."
		data["form"] = form
		c.HTML(http.StatusBadRequest, "register.html", data)
		return
	}
	if form.Password != form.ConfirmPassword {
		data := h.baseData(c, "Criar Conta")
		data["error"] = "As senhas não conferem."
		data["form"] = form
		c.HTML(http.StatusBadRequest, "register.html", data)
		return
	}

	resp, err := h.api.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		log.Printf("HandleRegister - falha para %s: %v", form.Email, err)
		data := h.baseData(c, "Criar Conta")
		data["error"] = api.UserMessage(err)
		data["fieldErrors"] = api.FieldErrors(err)
		data["form"] = form
		c.HTML(http.StatusOK, "register.html", data)
		return
	}

	h.openSession(c, resp)
	c.Redirect(http.StatusSeeOther, "/")
}

// openSession, abre a sessão local: gera cookie novo, migra o carrinho do
// cookie anônimo e liga o poller de pedidos.
func (h *Handler) openSession(c *gin.Context, auth *api.AuthResponse) {
	oldSessionID := h.sessionID(c)
	sessionID := uuid.New().String()
	c.SetCookie(sessionCookie, sessionID, 30*24*3600, "/", "", false, true)
	c.Set("sessionID", sessionID)

	session := &models.AuthSession{
		Token:        auth.Token,
		Name:         auth.Name,
		Email:        auth.Email,
		Role:         auth.Role,
		LastActivity: time.Now().UnixMilli(),
	}
	if err := h.sessions.SaveSession(sessionID, session); err != nil {
		log.Printf("openSession - erro ao gravar sessão de %s: %v", auth.Email, err)
	}

	if oldSessionID != "" && oldSessionID != sessionID {
		if err := h.cart.Migrate(oldSessionID, sessionID); err != nil {
			log.Printf("openSession - erro ao migrar carrinho %s -> %s: %v", oldSessionID, sessionID, err)
		}
	}

	h.poller.Enable(sessionID, auth.Token)
	log.Printf("openSession - %s entrou (papel %s)", auth.Email, auth.Role)
}

// UserLogout, encerra a sessão: desliga o poller, apaga a sessão e limpa o
// cookie. O carrinho fica, logout não é checkout.
func (h *Handler) UserLogout(c *gin.Context) {
	sessionID := h.sessionID(c)
	h.poller.Disable(sessionID)
	h.sessions.ClearSession(sessionID)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// SocialLogin, redireciona para o provedor de login social do backend.
func (h *Handler) SocialLogin(c *gin.Context) {
	provider := c.Param("provider")
	c.Redirect(http.StatusSeeOther, h.api.OAuthURL(provider))
}

// OAuthCallback, troca o token recebido na query por uma sessão: busca o
// perfil com o token e abre a sessão local.
func (h *Handler) OAuthCallback(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	profile, err := h.api.WithToken(token).Me(c.Request.Context())
	if err != nil {
		log.Printf("OAuthCallback - token recusado: %v", err)
		data := h.baseData(c, "Entrar")
		data["error"] = "Não foi possível concluir o login social. Tente novamente."
		data["captchaSiteKey"] = h.cfg.CaptchaSiteKey
		c.HTML(http.StatusUnauthorized, "login.html", data)
		return
	}

	h.openSession(c, &api.AuthResponse{
		Token: token,
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.Role,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// ForgotPasswordPage, mostra o formulário de recuperação de senha.
func (h *Handler) ForgotPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", h.baseData(c, "Recuperar Senha"))
}

// HandleForgotPassword, pede ao backend o e-mail de recuperação. A resposta
// é a mesma existindo a conta ou não.
func (h *Handler) HandleForgotPassword(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		data := h.baseData(c, "Recuperar Senha")
		data["error"] = "Informe seu e-mail."
		c.HTML(http.StatusBadRequest, "forgot_password.html", data)
		return
	}

	if err := h.api.ForgotPassword(c.Request.Context(), email); err != nil && api.KindOf(err) == api.KindNetwork {
		data := h.baseData(c, "Recuperar Senha")
		data["error"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "forgot_password.html", data)
		return
	}

	data := h.baseData(c, "Recuperar Senha")
	data["success"] = "Se o e-mail estiver cadastrado, você receberá as instruções em instantes."
	c.HTML(http.StatusOK, "forgot_password.html", data)
}

// ResetPasswordPage, mostra o formulário de nova senha com o token da URL.
func (h *Handler) ResetPasswordPage(c *gin.Context) {
	data := h.baseData(c, "Nova Senha")
	data["token"] = c.Query("token")
	c.HTML(http.StatusOK, "reset_password.html", data)
}

// HandleResetPassword, troca a senha com o token recebido por e-mail.
func (h *Handler) HandleResetPassword(c *gin.Context) {
	token := c.PostForm("token")
	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")

	data := h.baseData(c, "Nova Senha")
	data["token"] = token
	if password == "" || password != confirm {
		data["error"] = "As senhas não conferem."
		c.HTML(http.StatusBadRequest, "reset_password.html", data)
		return
	}

	if err := h.api.ResetPassword(c.Request.Context(), token, password); err != nil {
		log.Printf("HandleResetPassword - falha: %v", err)
		if api.KindOf(err) == api.KindBusiness || api.KindOf(err) == api.KindValidation {
			data["error"] = "Link de recuperação inválido ou vencido. Peça um novo."
		} else {
			data["error"] = api.UserMessage(err)
		}
		c.HTML(http.StatusOK, "reset_password.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// ProfilePage, mostra os dados da conta.
func (h *Handler) ProfilePage(c *gin.Context) {
	data := h.baseData(c, "Minha Conta")

	profile, err := h.userAPI(c).Me(c.Request.Context())
	if err != nil {
		log.Printf("ProfilePage - falha ao buscar perfil: %v", err)
		if api.IsAuth(err) {
			h.UserLogout(c)
			return
		}
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "profile.html", data)
		return
	}

	data["profile"] = profile
	c.HTML(http.StatusOK, "profile.html", data)
}

// HandleProfileUpdate, atualiza os dados da conta no backend.
func (h *Handler) HandleProfileUpdate(c *gin.Context) {
	var form models.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.baseData(c, "Minha Conta")
		data["error"] = "Preencha nome e e-mail."
		c.HTML(http.StatusBadRequest, "profile.html", data)
		return
	}

	userAPI := h.userAPI(c)
	profile, err := userAPI.Me(c.Request.Context())
	if err != nil {
		data := h.baseData(c, "Minha Conta")
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "profile.html", data)
		return
	}

	if err := userAPI.UpdateProfile(c.Request.Context(), profile.ID, &form); err != nil {
		log.Printf("HandleProfileUpdate - falha para %s: %v", profile.Email, err)
		data := h.baseData(c, "Minha Conta")
		data["profile"] = profile
		data["error"] = api.UserMessage(err)
		data["fieldErrors"] = api.FieldErrors(err)
		c.HTML(http.StatusOK, "profile.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile")
}

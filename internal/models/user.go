package models

// Papéis devolvidos pelo backend no login. FUNCIONARIO é o papel de
// operador do ateliê; para o front conta como acesso ao painel.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "FUNCIONARIO"
	RoleCustomer = "CUSTOMER"
)

// AuthSession, sessão autenticada guardada no servidor e referenciada pelo
// cookie de sessão. O token é opaco; quem valida é o backend.
type AuthSession struct {
	Token        string `json:"token"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	LastActivity int64  `json:"last_activity"` // epoch em milissegundos
}

// UserProfile, dados de perfil como o backend devolve em GET /users/me.
type UserProfile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// LoginForm, dados do formulário de login. O token do CAPTCHA é repassado
// ao backend sem validação local.
type LoginForm struct {
	Email        string `form:"email" binding:"required,email"`
	Password     string `form:"password" binding:"required"`
	CaptchaToken string `form:"captchaToken"`
}

// RegisterForm, dados do formulário de cadastro.
type RegisterForm struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirmPassword" binding:"required"`
}

// ProfileForm, dados do formulário de atualização de perfil.
type ProfileForm struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Phone string `form:"phone"`
}

// ContactForm, dados do formulário de contato (enviado por e-mail, o
// backend não tem endpoint de contato).
type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required"`
}

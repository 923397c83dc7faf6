package services

import (
	"log"
	"time"

	"artecomcarinho/internal/models"
	"artecomcarinho/internal/store"
)

// Intervalo mínimo entre gravações de atividade. Cada requisição autenticada
// conta como atividade, mas só persistimos de tempos em tempos.
const touchThrottle = 5 * time.Second

// SessionService, guarda a sessão autenticada de cada navegador e decide
// quando ela expira por inatividade. A expiração aqui é só conforto de
// interface: quem manda de verdade no token é o backend.
type SessionService struct {
	store           store.Store
	customerTimeout time.Duration
	staffTimeout    time.Duration
}

// NewSessionService, cria o serviço com os limites de inatividade por papel.
// Clientes têm limite curto; quem opera o painel fica logado o dia inteiro,
// a assimetria é proposital.
func NewSessionService(st store.Store, customerTimeout, staffTimeout time.Duration) *SessionService {
	return &SessionService{
		store:           st,
		customerTimeout: customerTimeout,
		staffTimeout:    staffTimeout,
	}
}

// SaveSession, grava a sessão, sobrescrevendo qualquer sessão anterior do
// mesmo navegador.
func (ss *SessionService) SaveSession(sessionID string, session *models.AuthSession) error {
	if session.LastActivity == 0 {
		session.LastActivity = time.Now().UnixMilli()
	}
	return ss.store.SaveSession(sessionID, session)
}

// GetSession, retorna a sessão ou nil. Falha de armazenamento conta como
// "sem sessão", nunca vira erro para quem chama.
func (ss *SessionService) GetSession(sessionID string) *models.AuthSession {
	if sessionID == "" {
		return nil
	}
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil
	}
	return session
}

// ClearSession, remove a sessão do navegador.
func (ss *SessionService) ClearSession(sessionID string) {
	if err := ss.store.DeleteSession(sessionID); err != nil {
		log.Printf("SessionService.ClearSession - erro ao remover sessão %s: %v", sessionID, err)
	}
}

// IsAdmin, indica se o papel dá acesso ao painel. Comparação exata contra o
// conjunto de papéis de operação, nunca busca por substring.
func (ss *SessionService) IsAdmin(session *models.AuthSession) bool {
	if session == nil {
		return false
	}
	switch session.Role {
	case models.RoleAdmin, models.RoleEmployee:
		return true
	}
	return false
}

// TouchActivity, registra atividade do usuário. Gravações são limitadas a
// uma a cada poucos segundos para não reescrever a sessão a cada clique.
func (ss *SessionService) TouchActivity(sessionID string) {
	session := ss.GetSession(sessionID)
	if session == nil {
		return
	}
	now := time.Now().UnixMilli()
	if now-session.LastActivity < touchThrottle.Milliseconds() {
		return
	}
	session.LastActivity = now
	if err := ss.store.SaveSession(sessionID, session); err != nil {
		log.Printf("SessionService.TouchActivity - erro ao gravar sessão %s: %v", sessionID, err)
	}
}

// timeoutFor, retorna o limite de inatividade do papel.
func (ss *SessionService) timeoutFor(role string) time.Duration {
	switch role {
	case models.RoleAdmin, models.RoleEmployee:
		return ss.staffTimeout
	}
	return ss.customerTimeout
}

// Expired, verifica se a sessão passou do limite de inatividade do papel.
func (ss *SessionService) Expired(session *models.AuthSession, now time.Time) bool {
	if session == nil {
		return true
	}
	idle := now.UnixMilli() - session.LastActivity
	return idle > ss.timeoutFor(session.Role).Milliseconds()
}

// Live, retorna as sessões que ainda estão dentro do limite de inatividade
// do papel. Usado na subida do processo para religar os observadores de
// pedidos das sessões que sobreviveram ao reinício.
func (ss *SessionService) Live(now time.Time) map[string]*models.AuthSession {
	sessions, err := ss.store.AllSessions()
	if err != nil {
		log.Printf("SessionService.Live - erro ao listar sessões: %v", err)
		return nil
	}

	live := map[string]*models.AuthSession{}
	for id, session := range sessions {
		if !ss.Expired(session, now) {
			live[id] = session
		}
	}
	return live
}

// Sweep, varre as sessões e remove as expiradas. Retorna os IDs removidos
// para que o chamador desligue o poller e descarte notificações pendentes.
func (ss *SessionService) Sweep(now time.Time) []string {
	sessions, err := ss.store.AllSessions()
	if err != nil {
		log.Printf("SessionService.Sweep - erro ao listar sessões: %v", err)
		return nil
	}

	var expired []string
	for id, session := range sessions {
		if ss.Expired(session, now) {
			ss.ClearSession(id)
			expired = append(expired, id)
			log.Printf("SessionService.Sweep - sessão %s expirada por inatividade (papel %s)", id, session.Role)
		}
	}
	return expired
}

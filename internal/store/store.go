// Package store guarda o estado por sessão de navegador: o carrinho e a
// sessão autenticada. É o análogo do localStorage do navegador, mantido no
// servidor e referenciado pelo cookie de sessão.
package store

import (
	"errors"

	"artecomcarinho/internal/models"
)

// ErrNotFound, indica que não há registro para a sessão pedida. Não é um
// erro de verdade para quem chama: carrinho ausente vira carrinho vazio e
// sessão ausente vira "não autenticado".
var ErrNotFound = errors.New("store: registro não encontrado")

// Store, define a persistência de carrinhos e sessões.
type Store interface {
	GetCart(sessionID string) (*models.Cart, error)
	SaveCart(cart *models.Cart) error
	DeleteCart(sessionID string) error

	GetSession(sessionID string) (*models.AuthSession, error)
	SaveSession(sessionID string, session *models.AuthSession) error
	DeleteSession(sessionID string) error
	// AllSessions, retorna as sessões vivas indexadas pelo ID. Usado pelo
	// varredor de inatividade.
	AllSessions() (map[string]*models.AuthSession, error)
}

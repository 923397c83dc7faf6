package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"artecomcarinho/internal/models"
)

// storeData, representa todos os dados do arquivo JSON.
type storeData struct {
	Carts    map[string]*models.Cart        `json:"carts"`
	Sessions map[string]*models.AuthSession `json:"sessions"`
}

// JSONStore, persiste carrinhos e sessões em um arquivo JSON local. Serve
// para desenvolvimento e para instalações pequenas de uma máquina só.
type JSONStore struct {
	mu       sync.RWMutex
	data     storeData
	filePath string
}

// NewJSONStore, cria o store e carrega o arquivo, se existir.
func NewJSONStore(filePath string) (*JSONStore, error) {
	s := &JSONStore{filePath: filePath}
	if err := s.loadData(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) loadData() error {
	s.data = storeData{
		Carts:    map[string]*models.Cart{},
		Sessions: map[string]*models.AuthSession{},
	}

	fileData, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return s.saveData()
	}
	if err != nil {
		return err
	}
	if len(fileData) == 0 {
		return nil
	}
	if err := json.Unmarshal(fileData, &s.data); err != nil {
		return err
	}
	if s.data.Carts == nil {
		s.data.Carts = map[string]*models.Cart{}
	}
	if s.data.Sessions == nil {
		s.data.Sessions = map[string]*models.AuthSession{}
	}
	return nil
}

func (s *JSONStore) saveData() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// GetCart, retorna o carrinho da sessão ou ErrNotFound.
func (s *JSONStore) GetCart(sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.data.Carts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *cart
	clone.Items = make([]models.CartItem, len(cart.Items))
	copy(clone.Items, cart.Items)
	return &clone, nil
}

// SaveCart, grava o carrinho da sessão.
func (s *JSONStore) SaveCart(cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart.UpdatedAt = time.Now()
	clone := *cart
	clone.Items = make([]models.CartItem, len(cart.Items))
	copy(clone.Items, cart.Items)
	s.data.Carts[cart.SessionID] = &clone
	return s.saveData()
}

// DeleteCart, remove o carrinho da sessão.
func (s *JSONStore) DeleteCart(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.Carts, sessionID)
	return s.saveData()
}

// GetSession, retorna a sessão autenticada ou ErrNotFound.
func (s *JSONStore) GetSession(sessionID string) (*models.AuthSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.data.Sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *session
	return &clone, nil
}

// SaveSession, grava a sessão autenticada, sobrescrevendo a anterior.
func (s *JSONStore) SaveSession(sessionID string, session *models.AuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.data.Sessions[sessionID] = &clone
	return s.saveData()
}

// DeleteSession, remove a sessão autenticada.
func (s *JSONStore) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.Sessions, sessionID)
	return s.saveData()
}

// AllSessions, retorna uma cópia das sessões vivas.
func (s *JSONStore) AllSessions() (map[string]*models.AuthSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make(map[string]*models.AuthSession, len(s.data.Sessions))
	for id, session := range s.data.Sessions {
		clone := *session
		sessions[id] = &clone
	}
	return sessions, nil
}

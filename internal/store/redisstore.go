package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"artecomcarinho/internal/models"
)

const (
	cartKeyPrefix    = "acc:cart:"
	sessionKeyPrefix = "acc:session:"

	// Carrinhos abandonados somem sozinhos depois de 30 dias.
	cartTTL = 30 * 24 * time.Hour
	// Sessões vivem mais que o limite de inatividade do painel; quem
	// expira por inatividade é o varredor, o TTL é só faxina.
	sessionTTL = 48 * time.Hour
)

// RedisStore, persiste carrinhos e sessões no Redis. Usado quando a
// aplicação roda com mais de uma instância atrás do balanceador.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore, conecta no Redis e confere a conexão com um ping.
func NewRedisStore(addr string) (*RedisStore, error) {
	opt := &redis.Options{Addr: addr}
	// Aceita também URL completa (redis://...).
	if parsed, err := redis.ParseURL(addr); err == nil {
		opt = parsed
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: falha ao conectar no Redis em %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) getJSON(key string, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *RedisStore) setJSON(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Set(ctx, key, data, ttl).Err()
}

// GetCart, retorna o carrinho da sessão ou ErrNotFound.
func (s *RedisStore) GetCart(sessionID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.getJSON(cartKeyPrefix+sessionID, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveCart, grava o carrinho da sessão.
func (s *RedisStore) SaveCart(cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	return s.setJSON(cartKeyPrefix+cart.SessionID, cart, cartTTL)
}

// DeleteCart, remove o carrinho da sessão.
func (s *RedisStore) DeleteCart(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Del(ctx, cartKeyPrefix+sessionID).Err()
}

// GetSession, retorna a sessão autenticada ou ErrNotFound.
func (s *RedisStore) GetSession(sessionID string) (*models.AuthSession, error) {
	var session models.AuthSession
	if err := s.getJSON(sessionKeyPrefix+sessionID, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession, grava a sessão autenticada, sobrescrevendo a anterior.
func (s *RedisStore) SaveSession(sessionID string, session *models.AuthSession) error {
	return s.setJSON(sessionKeyPrefix+sessionID, session, sessionTTL)
}

// DeleteSession, remove a sessão autenticada.
func (s *RedisStore) DeleteSession(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// AllSessions, varre as chaves de sessão e retorna as sessões vivas.
func (s *RedisStore) AllSessions() (map[string]*models.AuthSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessions := map[string]*models.AuthSession{}
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		var session models.AuthSession
		if err := s.getJSON(key, &session); err != nil {
			continue
		}
		sessions[key[len(sessionKeyPrefix):]] = &session
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

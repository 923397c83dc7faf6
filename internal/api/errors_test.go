package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWithStatus(t *testing.T, status int, body string) error {
	t.Helper()
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
	_, err := client.GetMyOrders(context.Background())
	require.Error(t, err)
	return err
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"401 é auth", 401, `{"message":"token expirado"}`, KindAuth},
		{"403 é auth", 403, `{}`, KindAuth},
		{"404 é not found", 404, `{}`, KindNotFound},
		{"400 com campos é validação", 400, `{"message":"dados inválidos","errors":{"email":"formato inválido"}}`, KindValidation},
		{"400 sem campos é regra de negócio", 400, `{"message":"não é possível cancelar um pedido entregue"}`, KindBusiness},
		{"422 é regra de negócio", 422, `{"message":"estoque insuficiente"}`, KindBusiness},
		{"500 é servidor", 500, ``, KindServer},
		{"503 é servidor", 503, ``, KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := callWithStatus(t, tt.status, tt.body)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestFieldErrorsExposed(t *testing.T) {
	err := callWithStatus(t, 400, `{"message":"dados inválidos","errors":{"email":"formato inválido","phone":"obrigatório"}}`)

	fields := FieldErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "formato inválido", fields["email"])
}

func TestBusinessMessageSurfacesToUser(t *testing.T) {
	err := callWithStatus(t, 400, `{"message":"não é possível cancelar um pedido entregue"}`)
	assert.Equal(t, "não é possível cancelar um pedido entregue", UserMessage(err))
}

func TestUserMessageCoversEveryKind(t *testing.T) {
	for _, err := range []error{
		&Error{Kind: KindAuth},
		&Error{Kind: KindValidation},
		&Error{Kind: KindNotFound},
		&Error{Kind: KindBusiness},
		&Error{Kind: KindServer},
		errors.New("dns falhou"),
	} {
		assert.NotEmpty(t, UserMessage(err))
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsAuth(&Error{Kind: KindAuth}))
	assert.False(t, IsAuth(&Error{Kind: KindServer}))
	assert.False(t, IsAuth(nil))
	assert.True(t, IsNotFound(&Error{Kind: KindNotFound}))
	assert.False(t, IsNotFound(errors.New("x")))
}

func TestErrorStringIncludesBackendMessage(t *testing.T) {
	err := &Error{Kind: KindBusiness, Status: 422, Message: "estoque insuficiente"}
	assert.Contains(t, err.Error(), "estoque insuficiente")
	assert.Contains(t, err.Error(), "422")
}

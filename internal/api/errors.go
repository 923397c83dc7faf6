package api

import (
	"errors"
	"fmt"
)

// Kind, classifica as falhas do backend em uma taxonomia única. Cada página
// consome o tipo classificado em vez de inventar a própria mensagem.
type Kind int

const (
	// KindNetwork, falha de transporte: o backend não respondeu.
	KindNetwork Kind = iota
	// KindAuth, 401/403: sessão inválida ou sem permissão.
	KindAuth
	// KindValidation, 400 com erros por campo.
	KindValidation
	// KindNotFound, 404.
	KindNotFound
	// KindBusiness, regra de negócio rejeitada (422 ou mensagem no corpo).
	KindBusiness
	// KindServer, 5xx ou resposta inesperada.
	KindServer
)

// Error, erro classificado de uma chamada ao backend.
type Error struct {
	Kind    Kind
	Status  int
	Message string            // mensagem do corpo da resposta, se houver
	Fields  map[string]string // erros por campo em validações
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	if e.cause != nil {
		return fmt.Sprintf("api: %v", e.cause)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// classify, converte um status HTTP e o corpo decodificado em um *Error.
func classify(status int, body errorBody) *Error {
	e := &Error{Status: status, Message: body.Message, Fields: body.Errors}
	switch {
	case status == 400 && len(body.Errors) > 0:
		e.Kind = KindValidation
	case status == 400 || status == 422:
		e.Kind = KindBusiness
	case status == 401 || status == 403:
		e.Kind = KindAuth
	case status == 404:
		e.Kind = KindNotFound
	default:
		e.Kind = KindServer
	}
	return e
}

// errorBody, formato de erro do backend.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// KindOf, retorna a classe do erro. Erros que não vieram do client contam
// como rede (contexto cancelado, DNS, conexão recusada).
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// IsAuth, indica se a falha é de autenticação/permissão.
func IsAuth(err error) bool {
	return err != nil && KindOf(err) == KindAuth
}

// IsNotFound, indica se o recurso não existe no backend.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// FieldErrors, retorna os erros por campo de uma falha de validação.
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// UserMessage, traduz qualquer erro de chamada em uma mensagem única para o
// usuário. As páginas não devem escrever cópias próprias dessas mensagens.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindAuth:
			return "Sua sessão expirou ou você não tem permissão. Entre novamente."
		case KindValidation:
			return "Alguns campos precisam de correção. Verifique o formulário."
		case KindNotFound:
			return "Não encontramos o que você procura."
		case KindBusiness:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "Não foi possível concluir a operação."
		case KindServer:
			return "Tivemos um problema do nosso lado. Tente novamente em instantes."
		}
	}
	return "Não conseguimos falar com o servidor. Verifique sua conexão e tente de novo."
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Uploader, envia imagens de produto para o serviço de upload configurado e
// devolve a URL pública. Serviço e chave são configuração, não protocolo.
type Uploader struct {
	uploadURL string
	key       string
	http      *http.Client
}

// NewUploader, cria o uploader. Com URL vazia o upload fica desativado e o
// formulário de produto aceita apenas URL de imagem já hospedada.
func NewUploader(uploadURL, key string, httpClient *http.Client) *Uploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uploader{uploadURL: uploadURL, key: key, http: httpClient}
}

// Enabled, indica se há serviço de upload configurado.
func (u *Uploader) Enabled() bool {
	return u.uploadURL != ""
}

// Upload, envia o arquivo e retorna a URL da imagem hospedada.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("upload: serviço de imagens não configurado")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if u.key != "" {
		if err := writer.WriteField("key", u.key); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", classify(resp.StatusCode, errorBody{Message: "falha no upload da imagem"})
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &Error{Kind: KindServer, Status: resp.StatusCode, cause: err}
	}
	return result.URL, nil
}

// Package fetch descarga el contenido de importación desde una URL.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// HTTPFetcher descarga documentos con timeout y límite de tamaño.
// Usa net/http de la stdlib.
type HTTPFetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewHTTPFetcher construye el cliente. maxBytes <= 0 desactiva el límite.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
}

// Fetch hace GET sobre url. Errores de red, estados no 2xx y cuerpos demasiado grandes devuelven ErrFetchFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: url inválida: %v", domain.ErrFetchFailed, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if f.maxBytes > 0 {
		r = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrFetchFailed, err)
	}
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: la respuesta supera %d bytes", domain.ErrFetchFailed, f.maxBytes)
	}
	return body, nil
}

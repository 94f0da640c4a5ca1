package viacep

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/pkg/config"
)

// Address es la dirección estructurada que devuelve la consulta de CEP.
type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Lookup expone la consulta de CEP (ViaCEP u otro servicio compatible).
type Lookup interface {
	Find(cep string) (*Address, error)
}

var _ Lookup = (*Client)(nil)

// Client consulta https://viacep.com.br para autocompletar direcciones.
// Cualquier falla (red, CEP inexistente, formato inválido) se mapea a
// domain.ErrNotFound: el formulario sigue siendo editable a mano.
type Client struct {
	http *resty.Client
}

// respuesta cruda de ViaCEP; "erro": true indica CEP no encontrado.
type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// NewClient construye el cliente con la configuración de la app.
func NewClient(cfg config.CEPConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return &Client{http: rc}
}

// Normalize deja solo los dígitos del CEP. Retorna error si no quedan 8.
func Normalize(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 8 {
		return "", fmt.Errorf("cep %q: %w", cep, domain.ErrInvalidInput)
	}
	return b.String(), nil
}

// Find consulta el CEP normalizado y devuelve la dirección estructurada.
func (c *Client) Find(cep string) (*Address, error) {
	normalized, err := Normalize(cep)
	if err != nil {
		return nil, err
	}

	result := new(viaCEPResponse)
	resp, err := c.http.R().
		SetResult(result).
		Get(fmt.Sprintf("/ws/%s/json/", normalized))
	if err != nil {
		return nil, fmt.Errorf("consulta cep: %w", domain.ErrNotFound)
	}
	if resp.StatusCode() >= http.StatusBadRequest || result.Erro {
		return nil, domain.ErrNotFound
	}

	return &Address{
		ZipCode:      normalized,
		Street:       result.Logradouro,
		Neighborhood: result.Bairro,
		City:         result.Localidade,
		State:        result.UF,
	}, nil
}

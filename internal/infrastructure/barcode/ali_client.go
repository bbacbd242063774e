package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/product"
	"github.com/ngtrphuong/ioe/pkg/logger"
)

// Verificar en tiempo de compilación que AliClient implementa BarcodeLookupService.
var _ product.BarcodeLookupService = (*AliClient)(nil)

// AliClient consulta metadatos de códigos de barras contra el servicio estilo
// Aliyun Market (autenticación por APPCODE en el header Authorization).
// Usa net/http de la librería estándar; no requiere SDK.
type AliClient struct {
	appCode    string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewAliClient construye el cliente. Con appCode vacío toda consulta devuelve
// (nil, nil): el enriquecimiento queda desactivado sin romper el alta de productos.
func NewAliClient(appCode, baseURL string, log *logger.Logger) *AliClient {
	return &AliClient{
		appCode: appCode,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// aliResponse estructura de la respuesta del servicio.
type aliResponse struct {
	ShowapiResCode int    `json:"showapi_res_code"`
	ShowapiResErr  string `json:"showapi_res_error"`
	Body           struct {
		Flag         bool   `json:"flag"`
		GoodsName    string `json:"goodsName"`
		Spec         string `json:"spec"`
		Manufacturer string `json:"manuName"`
		Price        string `json:"price"`
	} `json:"showapi_res_body"`
}

// Lookup consulta el código de barras. Best-effort: servicio caído, timeout o
// código desconocido devuelven (nil, nil) y el detalle queda en el log; el flujo
// de caja nunca se bloquea por este servicio.
func (c *AliClient) Lookup(ctx context.Context, code string) (*dto.BarcodeLookupResponse, error) {
	if c.appCode == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?code=%s", c.baseURL, url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "APPCODE "+c.appCode)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("barcode", code).Msg("consulta de código de barras falló")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("barcode", code).Msg("servicio de códigos de barras respondió error")
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil
	}

	var parsed aliResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.ShowapiResCode != 0 || !parsed.Body.Flag {
		return nil, nil
	}

	result := &dto.BarcodeLookupResponse{
		Found:         true,
		Barcode:       code,
		Name:          parsed.Body.GoodsName,
		Specification: parsed.Body.Spec,
		Manufacturer:  parsed.Body.Manufacturer,
	}
	if parsed.Body.Price != "" {
		if price, err := decimal.NewFromString(parsed.Body.Price); err == nil {
			result.SuggestedPrice = price
		}
	}
	return result, nil
}

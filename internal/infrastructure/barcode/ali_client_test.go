package barcode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngtrphuong/ioe/internal/infrastructure/barcode"
	"github.com/ngtrphuong/ioe/pkg/logger"
)

func TestLookup_CodigoConocido(t *testing.T) {
	var gotAuth, gotCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCode = r.URL.Query().Get("code")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"showapi_res_code": 0,
			"showapi_res_body": {
				"flag": true,
				"goodsName": "Cola 500ml",
				"spec": "500ml",
				"manuName": "Acme",
				"price": "3.50"
			}
		}`))
	}))
	defer srv.Close()

	client := barcode.NewAliClient("test-appcode", srv.URL, logger.Nop())
	result, err := client.Lookup(context.Background(), "6901234567890")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "APPCODE test-appcode", gotAuth)
	assert.Equal(t, "6901234567890", gotCode)
	assert.True(t, result.Found)
	assert.Equal(t, "Cola 500ml", result.Name)
	assert.Equal(t, "Acme", result.Manufacturer)
	assert.True(t, decimal.RequireFromString("3.50").Equal(result.SuggestedPrice))
}

// Código desconocido: el servicio responde flag=false y el cliente devuelve
// (nil, nil) en vez de error.
func TestLookup_CodigoDesconocido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"showapi_res_code": 0, "showapi_res_body": {"flag": false}}`))
	}))
	defer srv.Close()

	client := barcode.NewAliClient("test-appcode", srv.URL, logger.Nop())
	result, err := client.Lookup(context.Background(), "000")
	require.NoError(t, err)
	assert.Nil(t, result)
}

// Errores del servicio nunca se propagan al flujo de caja.
func TestLookup_ServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := barcode.NewAliClient("test-appcode", srv.URL, logger.Nop())
	result, err := client.Lookup(context.Background(), "6901234567890")
	require.NoError(t, err)
	assert.Nil(t, result)

	// URL inalcanzable: también (nil, nil).
	offline := barcode.NewAliClient("test-appcode", "http://127.0.0.1:1", logger.Nop())
	result, err = offline.Lookup(context.Background(), "6901234567890")
	require.NoError(t, err)
	assert.Nil(t, result)
}

// Sin APPCODE el enriquecimiento queda desactivado.
func TestLookup_SinAppCode(t *testing.T) {
	client := barcode.NewAliClient("", "http://ejemplo.invalido", logger.Nop())
	result, err := client.Lookup(context.Background(), "6901234567890")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestLookup_RespuestaMalformada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`no es json`))
	}))
	defer srv.Close()

	client := barcode.NewAliClient("test-appcode", srv.URL, logger.Nop())
	result, err := client.Lookup(context.Background(), "6901234567890")
	require.NoError(t, err)
	assert.Nil(t, result)
}

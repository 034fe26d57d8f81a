package http

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/ticket"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bills map[int]domain.Bill

func (b bills) Get(ctx context.Context, ID int) (domain.Bill, error) {
	switch ID {
	case 500:
		return domain.Bill{}, errors.New("connection reset")
	case 401:
		return domain.Bill{}, posapi.ErrUnauthenticated
	}
	bill, ok := b[ID]
	if !ok {
		return domain.Bill{}, &posapi.HTTPError{Method: "GET", Endpoint: "/cuentas", StatusCode: 404}
	}
	return bill, nil
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTicketRoutes(t *testing.T) {
	source := bills{7: {ID: 7, Total: 12.1, PaymentMethod: "efectivo",
		Lines: []domain.BillLine{{Name: "Menú del día", Quantity: 1, UnitPrice: 12.1, Subtotal: 12.1}}}}
	srv := httptest.NewServer(NewRouter(source, ticket.Options{Name: "Casa Pepe", Footer: "Gracias"}))
	defer srv.Close()

	resp, body := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "RestoPos "))

	resp, body = get(t, srv, "/cuentas/7/ticket.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "000007")
	assert.Contains(t, body, "Menú del día")
	assert.Contains(t, body, "Efectivo")

	resp, body = get(t, srv, "/cuentas/7/ticket.pdf")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF"))

	for path, status := range map[string]int{
		"/cuentas/abc/ticket.txt": http.StatusBadRequest,
		"/cuentas/9/ticket.txt":   http.StatusNotFound,
		"/cuentas/401/ticket.pdf": http.StatusUnauthorized,
		"/cuentas/500/ticket.pdf": http.StatusBadGateway,
	} {
		resp, _ := get(t, srv, path)
		assert.Equal(t, status, resp.StatusCode, path)
	}
}

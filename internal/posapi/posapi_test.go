package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "tok-123"

func newTestAPI(t *testing.T, router *httprouter.Router) POSAPI {
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	api, err := NewAPI(Config{URL: srv.URL + "/api", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return api
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewAPIRejectsBadURL(t *testing.T) {
	_, err := NewAPI(Config{URL: ""})
	assert.Error(t, err)
	_, err = NewAPI(Config{URL: "not a url"})
	assert.Error(t, err)
}

func TestEmptyTokenFailsBeforeRequest(t *testing.T) {
	var hits int32
	router := httprouter.New()
	router.GET("/api/mesas", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusOK, `[]`)
	})
	api := newTestAPI(t, router)

	_, err := api.TableList(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnauthenticated))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestLoginSendsCredentialsWithoutToken(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/login", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body mapper.LoginBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secreto" {
			writeJSON(w, http.StatusUnauthorized, `{"mensaje":"Credenciales inválidas"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"token":"abc","id":5,"nombre":"Ana","rol":"CAMARERO"}`)
	})
	api := newTestAPI(t, router)

	login, err := api.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
	assert.Equal(t, mapper.Login{Token: "abc", UserID: 5, UserName: "Ana", Role: "CAMARERO"}, login)

	_, err = api.Login(context.Background(), "ana", "mal")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "Credenciales inválidas", he.Message())
}

func TestLoginValidatesBody(t *testing.T) {
	api := newTestAPI(t, httprouter.New())
	_, err := api.Login(context.Background(), "", "")
	var verr *mapper.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestTableListSendsBearerAndFilters(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/mesas", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "RestoPos/"))
		assert.Equal(t, "libre", r.URL.Query().Get("estado"))
		writeJSON(w, http.StatusOK, `[
			{"id":1,"numero":1,"capacidad":4,"estado":"LIBRE","ubicacion":"Terraza"},
			{"id":2,"numero":"2","estado":"desconocido"}
		]`)
	})
	api := newTestAPI(t, router)

	tables, err := api.TableList(context.Background(), token, options.State("libre"))
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, domain.Table{ID: 1, Number: 1, Capacity: 4, State: domain.TableFree, Location: "Terraza"}, tables[0])
	assert.Equal(t, 2, tables[1].Number)
	assert.Equal(t, domain.TableFree, tables[1].State)
	assert.Equal(t, mapper.DefaultTableCapacity, tables[1].Capacity)
}

func TestMutationEmptyBodyIsSuccess(t *testing.T) {
	router := httprouter.New()
	router.PUT("/api/mesas/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		assert.Equal(t, "3", ps.ByName("id"))
		var body mapper.TableBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mantenimiento", body.Estado)
		w.WriteHeader(http.StatusNoContent)
	})
	router.DELETE("/api/mesas/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	api := newTestAPI(t, router)

	table, err := api.TableUpdate(context.Background(), token, 3, mapper.TableBody{Numero: 3, Capacidad: 2, Estado: "mantenimiento"})
	require.NoError(t, err)
	assert.Nil(t, table)
	assert.NoError(t, api.TableDelete(context.Background(), token, 3))
}

func TestInvalidBodyIsNotSent(t *testing.T) {
	var hits int32
	router := httprouter.New()
	router.POST("/api/mesas", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		atomic.AddInt32(&hits, 1)
	})
	api := newTestAPI(t, router)

	_, err := api.TableAdd(context.Background(), token, mapper.TableBody{Numero: 0, Capacidad: 4})
	var verr *mapper.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestOrderStatePatch(t *testing.T) {
	router := httprouter.New()
	router.PATCH("/api/pedidos/:id/estado", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var body mapper.StateBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"id":`+ps.ByName("id")+`,"estado":"`+body.Estado+`","camareroId":2}`)
	})
	router.PATCH("/api/pedidos/:id/detalles/:line/estado", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		writeJSON(w, http.StatusForbidden, `{"message":"forbidden"}`)
	})
	api := newTestAPI(t, router)

	order, err := api.OrderSetState(context.Background(), token, 9, domain.OrderReady)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 9, order.ID)
	assert.Equal(t, domain.OrderReady, order.State)

	_, err = api.OrderLineSetState(context.Background(), token, 9, 1, domain.OrderReady)
	assert.True(t, IsForbidden(err))
}

func TestBillEndpoints(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/cuentas/generar/mesa/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		writeJSON(w, http.StatusCreated, `{"id":40,"mesaId":`+ps.ByName("id")+`,"total":12.5,"metodoPago":"efectivo",
			"detalles":"[{\"nombre\":\"Caña\",\"cantidad\":5,\"precioUnitario\":2.5}]"}`)
	})
	router.GET("/api/cuentas/resumen", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"totalCuentas":3,"totalVentas":"120.50","porMetodoPago":{"efectivo":20.5,"tarjeta":100}}`)
	})
	api := newTestAPI(t, router)

	bill, err := api.BillGenerateForTable(context.Background(), token, 4)
	require.NoError(t, err)
	require.NotNil(t, bill)
	require.NotNil(t, bill.TableID)
	assert.Equal(t, 4, *bill.TableID)
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, 12.5, bill.Lines[0].Subtotal)

	sum, err := api.BillSummary(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 120.5, sum.Total)
	assert.Equal(t, 100.0, sum.ByPaymentMethod["tarjeta"])
}

func TestTransportErrors(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/productos", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `<html>oops</html>`)
	})
	router.GET("/api/categorias", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		time.Sleep(300 * time.Millisecond)
		writeJSON(w, http.StatusOK, `[]`)
	})
	api := newTestAPI(t, router)

	_, err := api.ProductList(context.Background(), token)
	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, 0, StatusCode(err))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = api.CategoryList(ctx, token)
	assert.True(t, errors.As(err, &te))

	closed, err := NewAPI(Config{URL: "http://127.0.0.1:1/api", Timeout: time.Second})
	require.NoError(t, err)
	_, err = closed.UserList(context.Background(), token)
	assert.True(t, errors.As(err, &te))
}

func TestHTTPErrorMessage(t *testing.T) {
	e := &HTTPError{Method: "GET", Endpoint: "/mesas", StatusCode: 404}
	assert.Equal(t, "GET /mesas: status 404: Not Found", e.Error())
	assert.True(t, IsNotFound(e))

	e.Body = "plain failure"
	assert.Equal(t, "plain failure", e.Message())
	e.Body = `{"error":"Mesa no encontrada"}`
	assert.Equal(t, "Mesa no encontrada", e.Message())
}

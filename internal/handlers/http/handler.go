package http

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/telegram"
	"RestoPos/internal/ticket"
	"RestoPos/internal/version"
	"RestoPos/pkg/logging"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// BillSource resolves a bill by id; controller.Bills is one.
type BillSource interface {
	Get(ctx context.Context, ID int) (domain.Bill, error)
}

// NewRouter serves printable tickets of the backend's bills.
func NewRouter(bills BillSource, opts ticket.Options) *httprouter.Router {
	h := &handler{bills: bills, opts: opts}

	router := httprouter.New()
	router.GET("/", HandlerOtherAll)
	router.GET("/cuentas/:id/ticket.pdf", h.HandlerTicketPDF)
	router.GET("/cuentas/:id/ticket.txt", h.HandlerTicketText)
	return router
}

func HandlerOtherAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Debug("HandlerOtherAll:>Start")
	defer logger.Debug("HandlerOtherAll:>End")

	logger.Debugf("Request %s %s from %s", r.Method, r.URL, r.RemoteAddr)

	v := version.GetVersion()
	if _, err := fmt.Fprintf(w, "RestoPos %s", v.String()); err != nil {
		logger.Errorf("failed to send response, error: %v", err)
	}
}

type handler struct {
	bills BillSource
	opts  ticket.Options
}

func (h *handler) HandlerTicketPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerTicketPDF")
	defer logger.Info("End HandlerTicketPDF")

	doc, ok := h.document(w, r, ps)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := ticket.RenderPDF(doc, &buf); err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=ticket-%s.pdf", doc.Meta.Number))
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Errorf("failed to send response, error: %v", err)
	}
}

func (h *handler) HandlerTicketText(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerTicketText")
	defer logger.Info("End HandlerTicketText")

	doc, ok := h.document(w, r, ps)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := ticket.RenderText(doc, w); err != nil {
		logger.Errorf("failed to send response, error: %v", err)
	}
}

func (h *handler) document(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (ticket.Document, bool) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid bill id", http.StatusBadRequest)
		return ticket.Document{}, false
	}

	bill, err := h.bills.Get(r.Context(), id)
	if err != nil {
		h.fail(w, statusFor(err), errors.Wrapf(err, "bill %d", id))
		return ticket.Document{}, false
	}
	return ticket.Build(bill, h.opts), true
}

func (h *handler) fail(w http.ResponseWriter, status int, err error) {
	logger := logging.GetLogger()
	logger.Errorf("ticket request failed: %v", err)
	if status >= http.StatusInternalServerError {
		telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("No se pudo imprimir el ticket: %v", err))
	}
	http.Error(w, http.StatusText(status), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, posapi.ErrUnauthenticated), posapi.StatusCode(err) == http.StatusUnauthorized:
		return http.StatusUnauthorized
	case posapi.StatusCode(err) == http.StatusForbidden:
		return http.StatusForbidden
	case posapi.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

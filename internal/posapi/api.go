package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"RestoPos/internal/version"
	"RestoPos/pkg/logging"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// POSAPI is the backend surface. Every method but Login takes the bearer
// token and fails with ErrUnauthenticated when it is empty. Mutations return
// nil when the backend answers 2xx with an empty body.
type POSAPI interface {
	Login(ctx context.Context, username, password string) (mapper.Login, error)
	Me(ctx context.Context, token string) (domain.User, error)

	UserList(ctx context.Context, token string) ([]domain.User, error)
	UserGet(ctx context.Context, token string, ID int) (domain.User, error)
	UserAdd(ctx context.Context, token string, u mapper.UserBody) (*domain.User, error)
	UserUpdate(ctx context.Context, token string, ID int, u mapper.UserBody) (*domain.User, error)
	UserDelete(ctx context.Context, token string, ID int) error

	TableList(ctx context.Context, token string, opts ...options.Option) ([]domain.Table, error)
	TableGet(ctx context.Context, token string, ID int) (domain.Table, error)
	TableAdd(ctx context.Context, token string, t mapper.TableBody) (*domain.Table, error)
	TableUpdate(ctx context.Context, token string, ID int, t mapper.TableBody) (*domain.Table, error)
	TableDelete(ctx context.Context, token string, ID int) error

	OrderList(ctx context.Context, token string, opts ...options.Option) ([]domain.Order, error)
	OrderGet(ctx context.Context, token string, ID int) (domain.Order, error)
	OrderAdd(ctx context.Context, token string, o mapper.OrderBody) (*domain.Order, error)
	OrderUpdate(ctx context.Context, token string, ID int, o mapper.OrderBody) (*domain.Order, error)
	OrderSetState(ctx context.Context, token string, ID int, state domain.OrderState) (*domain.Order, error)
	OrderDelete(ctx context.Context, token string, ID int) error

	OrderLineList(ctx context.Context, token string, orderID int) ([]domain.OrderLine, error)
	OrderLineAdd(ctx context.Context, token string, orderID int, l mapper.OrderLineBody) (*domain.OrderLine, error)
	OrderLineUpdate(ctx context.Context, token string, orderID, lineID int, l mapper.OrderLineBody) (*domain.OrderLine, error)
	OrderLineSetState(ctx context.Context, token string, orderID, lineID int, state domain.OrderState) (*domain.OrderLine, error)
	OrderLineDelete(ctx context.Context, token string, orderID, lineID int) error

	ProductList(ctx context.Context, token string, opts ...options.Option) ([]domain.Product, error)
	ProductGet(ctx context.Context, token string, ID int) (domain.Product, error)
	ProductAdd(ctx context.Context, token string, p mapper.ProductBody) (*domain.Product, error)
	ProductUpdate(ctx context.Context, token string, ID int, p mapper.ProductBody) (*domain.Product, error)
	ProductDelete(ctx context.Context, token string, ID int) error

	CategoryList(ctx context.Context, token string) ([]domain.Category, error)
	CategoryGet(ctx context.Context, token string, ID int) (domain.Category, error)
	CategoryAdd(ctx context.Context, token string, c mapper.CategoryBody) (*domain.Category, error)
	CategoryUpdate(ctx context.Context, token string, ID int, c mapper.CategoryBody) (*domain.Category, error)
	CategoryDelete(ctx context.Context, token string, ID int) error

	ReservationList(ctx context.Context, token string, opts ...options.Option) ([]domain.Reservation, error)
	ReservationGet(ctx context.Context, token string, ID int) (domain.Reservation, error)
	ReservationAdd(ctx context.Context, token string, r mapper.ReservationBody) (*domain.Reservation, error)
	ReservationUpdate(ctx context.Context, token string, ID int, r mapper.ReservationBody) (*domain.Reservation, error)
	ReservationSetState(ctx context.Context, token string, ID int, state domain.ReservationState) (*domain.Reservation, error)
	ReservationDelete(ctx context.Context, token string, ID int) error

	BillList(ctx context.Context, token string, opts ...options.Option) ([]domain.Bill, error)
	BillGet(ctx context.Context, token string, ID int) (domain.Bill, error)
	BillGenerateForTable(ctx context.Context, token string, tableID int) (*domain.Bill, error)
	BillSummary(ctx context.Context, token string, opts ...options.Option) (domain.BillSummary, error)
}

type Config struct {
	URL        string
	Timeout    time.Duration
	RPS        int
	HTTPClient *http.Client
}

type posapi struct {
	url     string
	http    *resty.Client
	limiter *rate.Limiter
}

func NewAPI(cfg Config) (POSAPI, error) {
	logger := logging.GetLogger()
	logger.Debug("NewAPI:>Start")
	defer logger.Debug("NewAPI:>End")

	base := strings.TrimSuffix(strings.TrimSpace(cfg.URL), "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, errors.Errorf("invalid API url %q", cfg.URL)
	}

	var client *resty.Client
	if cfg.HTTPClient != nil {
		client = resty.NewWithClient(cfg.HTTPClient)
	} else {
		client = resty.New()
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	client.SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.GetVersion().UserAgent()).
		SetRetryCount(0)

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &posapi{
		url:     base,
		http:    client,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// call performs one request and returns the raw body of a 2xx answer.
func (p *posapi) call(ctx context.Context, token string, auth bool, method, endpoint string, body interface{}, opts []options.Option) ([]byte, error) {
	logger := logging.GetLogger()
	op := method + " " + endpoint

	if auth && token == "" {
		return nil, ErrUnauthenticated
	}
	if v, ok := body.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, &mapper.ValidationError{Entity: endpoint, Err: err}
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}

	requestID := uuid.NewString()
	req := p.http.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", requestID)
	if auth {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(opts) > 0 {
		params := url.Values{}
		option := new(options.OptionStruct)
		for _, opt := range opts {
			opt(option)
			params.Add(option.Key, option.Value)
		}
		req.SetQueryParamsFromValues(params)
	}

	logger.Debugf("Request %s id=%s", op, requestID)
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}
	logger.Debugf("Response %s id=%s status=%d time=%s", op, requestID, resp.StatusCode(), resp.Time())

	if !resp.IsSuccess() {
		return nil, &HTTPError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}
	return resp.Body(), nil
}

func decodeErr(op string, err error) error {
	return &TransportError{Op: op, Cause: errors.Wrap(err, "decode response")}
}

func list[T any](ctx context.Context, p *posapi, token, endpoint string, opts []options.Option, decode func([]byte) ([]T, *mapper.Report, error)) ([]T, error) {
	raw, err := p.call(ctx, token, true, http.MethodGet, endpoint, nil, opts)
	if err != nil {
		return nil, err
	}
	items, _, err := decode(raw)
	if err != nil {
		return nil, decodeErr("GET "+endpoint, err)
	}
	return items, nil
}

func get[T any](ctx context.Context, p *posapi, token, endpoint string, decode func([]byte) (T, *mapper.Report, error)) (T, error) {
	var zero T
	raw, err := p.call(ctx, token, true, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return zero, err
	}
	item, _, err := decode(raw)
	if err != nil {
		return zero, decodeErr("GET "+endpoint, err)
	}
	return item, nil
}

// send issues a mutation; an empty 2xx body yields nil.
func send[T any](ctx context.Context, p *posapi, token, method, endpoint string, body interface{}, decode func([]byte) (T, *mapper.Report, error)) (*T, error) {
	raw, err := p.call(ctx, token, true, method, endpoint, body, nil)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	item, _, err := decode(raw)
	if err != nil {
		return nil, decodeErr(method+" "+endpoint, err)
	}
	return &item, nil
}

func (p *posapi) remove(ctx context.Context, token, endpoint string) error {
	_, err := p.call(ctx, token, true, http.MethodDelete, endpoint, nil, nil)
	return err
}

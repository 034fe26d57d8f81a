package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/pkg/logging"
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Login is the only call that goes out without a token.
func (p *posapi) Login(ctx context.Context, username, password string) (mapper.Login, error) {
	logger := logging.GetLogger()
	logger.Debug("Login:>Start")
	defer logger.Debug("Login:>End")

	raw, err := p.call(ctx, "", false, http.MethodPost, "/login", mapper.LoginBody{Username: username, Password: password}, nil)
	if err != nil {
		return mapper.Login{}, err
	}
	login, _, err := mapper.LoginResponse(raw)
	if err != nil {
		var verr *mapper.ValidationError
		if errors.As(err, &verr) {
			return mapper.Login{}, err
		}
		return mapper.Login{}, decodeErr("POST /login", err)
	}
	logger.Infof("Login:>user %s signed in", username)
	return login, nil
}

func (p *posapi) Me(ctx context.Context, token string) (domain.User, error) {
	return get(ctx, p, token, "/usuarios/me", mapper.User)
}

func (p *posapi) UserList(ctx context.Context, token string) ([]domain.User, error) {
	return list(ctx, p, token, "/usuarios", nil, mapper.Users)
}

func (p *posapi) UserGet(ctx context.Context, token string, ID int) (domain.User, error) {
	return get(ctx, p, token, fmt.Sprintf("/usuarios/%d", ID), mapper.User)
}

func (p *posapi) UserAdd(ctx context.Context, token string, u mapper.UserBody) (*domain.User, error) {
	return send(ctx, p, token, http.MethodPost, "/usuarios", u, mapper.User)
}

func (p *posapi) UserUpdate(ctx context.Context, token string, ID int, u mapper.UserBody) (*domain.User, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/usuarios/%d", ID), u, mapper.User)
}

func (p *posapi) UserDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/usuarios/%d", ID))
}

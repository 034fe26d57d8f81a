package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"RestoPos/pkg/logging"
	"context"
	"strings"
)

// Login signs users in and out. Its Data is the current session snapshot.
type Login struct {
	*base[session.Data]
}

func NewLogin(api posapi.POSAPI, s *session.Store) *Login {
	return &Login{newBase("Login", api, s, s.Snapshot())}
}

// Login stores the session and, when the login answer lacks the identity,
// fills it from /usuarios/me. A failing refresh keeps the session.
func (c *Login) Login(ctx context.Context, username, password string) error {
	err := c.mutate(ctx, "Login", func(ctx context.Context, _ string) error {
		logger := logging.GetLogger()

		login, err := c.api.Login(ctx, strings.TrimSpace(username), password)
		if err != nil {
			return err
		}
		name := login.UserName
		if name == "" {
			name = username
		}
		c.session.SaveSession(login.Token, login.UserID, name, login.Role)

		if login.UserID == domain.NoUser || login.Role == "" {
			me, err := c.api.Me(ctx, login.Token)
			if err != nil {
				logger.Warnf("Login:>identity refresh failed: %v", err)
			} else {
				c.session.UpdateIdentity(me.ID, displayName(me), string(me.Role))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

// Refresh reloads the identity of the current token.
func (c *Login) Refresh(ctx context.Context) error {
	err := c.mutate(ctx, "Refresh", func(ctx context.Context, token string) error {
		me, err := c.api.Me(ctx, token)
		if err != nil {
			return err
		}
		c.session.UpdateIdentity(me.ID, displayName(me), string(me.Role))
		return nil
	})
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

func (c *Login) Logout() {
	c.session.Logout()
	c.publish()
}

// publish shows the session snapshot while the controller is attached.
func (c *Login) publish() {
	if !c.Detached() {
		c.Data.set(c.session.Snapshot())
	}
}

func (c *Login) Permissions() domain.Permissions {
	return c.session.Permissions()
}

func displayName(u domain.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

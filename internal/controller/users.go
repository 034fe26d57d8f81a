package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"context"
	"sort"
)

type Users struct {
	*base[[]domain.User]
}

func NewUsers(api posapi.POSAPI, s *session.Store) *Users {
	return &Users{newBase[[]domain.User]("Users", api, s, nil)}
}

func (c *Users) Load(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.User, error) {
		users, err := c.api.UserList(ctx, token)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(users, func(i, j int) bool { return users[i].Username < users[j].Username })
		return users, nil
	})
}

// Me fetches the signed-in user and refreshes the session identity.
func (c *Users) Me(ctx context.Context) (domain.User, error) {
	var me domain.User
	err := c.mutate(ctx, "Me", func(ctx context.Context, token string) error {
		var err error
		me, err = c.api.Me(ctx, token)
		if err != nil {
			return err
		}
		c.session.UpdateIdentity(me.ID, displayName(me), string(me.Role))
		return nil
	})
	return me, err
}

// Create registers u with the given password.
func (c *Users) Create(ctx context.Context, u domain.User, password string) error {
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		body := mapper.UserToBody(u)
		body.Password = password
		_, err := c.api.UserAdd(ctx, token, body)
		return err
	})
	return reload(ctx, err, c.Load)
}

// Update saves u; an empty password keeps the current one.
func (c *Users) Update(ctx context.Context, u domain.User, password string) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		body := mapper.UserToBody(u)
		body.Password = password
		_, err := c.api.UserUpdate(ctx, token, u.ID, body)
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Users) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.UserDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}

func (c *Users) SetActive(ctx context.Context, u domain.User, active bool) error {
	u.Active = active
	return c.Update(ctx, u, "")
}

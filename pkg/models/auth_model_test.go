package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

func TestRegister(t *testing.T) {
	app, ds := newModelTestDB(t)
	m := NewAuthModel(app, ds)

	defaultRole := &dbmodels.Role{Name: config.DefaultUserRoleName}
	require.NoError(t, ds.CreateRole(defaultRole))
	viewer := &dbmodels.Role{Name: "viewer"}
	require.NoError(t, ds.CreateRole(viewer))

	t.Run("unknown role is rejected before the user is created", func(t *testing.T) {
		_, err := m.Register(&RegisterReq{
			Name: "Ghost", Email: "ghost@example.com", Password: "s3cret-s3cret", RoleID: 99,
		})
		require.ErrorIs(t, err, ErrNotFound)

		user, err := ds.GetUserByEmail("ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("no role picks the default role", func(t *testing.T) {
		user, err := m.Register(&RegisterReq{
			Name: "Ana", Email: "ana@example.com", Password: "s3cret-s3cret",
		})
		require.NoError(t, err)
		require.Len(t, user.Roles, 1)
		assert.Equal(t, config.DefaultUserRoleName, user.Roles[0].Name)

		got, err := ds.GetUserByID(user.ID)
		require.NoError(t, err)
		require.Len(t, got.Roles, 1)
		assert.Equal(t, defaultRole.ID, got.Roles[0].ID)
	})

	t.Run("explicit role wins over the default", func(t *testing.T) {
		user, err := m.Register(&RegisterReq{
			Name: "Bud", Email: "bud@example.com", Password: "s3cret-s3cret", RoleID: viewer.ID,
		})
		require.NoError(t, err)
		require.Len(t, user.Roles, 1)
		assert.Equal(t, "viewer", user.Roles[0].Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := m.Register(&RegisterReq{
			Name: "Ana Again", Email: "ana@example.com", Password: "s3cret-s3cret",
		})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("missing default role registers without roles", func(t *testing.T) {
		require.NoError(t, ds.DeleteRole(defaultRole))

		user, err := m.Register(&RegisterReq{
			Name: "Nora", Email: "nora@example.com", Password: "s3cret-s3cret",
		})
		require.NoError(t, err)
		assert.Empty(t, user.Roles)
	})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aircon-admin/internal/authz"
	"aircon-admin/pkg/constants"
	apperrors "aircon-admin/pkg/errors"
)

func newPermissionFixture() (*fakePermissionRepo, *fakeCache, AuthPermissionServiceInterface) {
	repo := &fakePermissionRepo{grants: map[string][]string{
		"staff":      authz.DefaultGrants(authz.RoleStaff),
		"customer":   authz.DefaultGrants(authz.RoleCustomer),
		"technician": authz.DefaultGrants(authz.RoleTechnician),
	}}
	cache := newFakeCache()
	return repo, cache, NewAuthPermissionService(repo, cache, zap.NewNop(), time.Minute)
}

func TestGetRolePermissionsNames_CachesAfterFirstLoad(t *testing.T) {
	repo, cache, svc := newPermissionFixture()
	ctx := context.Background()

	first, err := svc.GetRolePermissionsNames(ctx, authz.RoleCustomer)
	require.NoError(t, err)
	second, err := svc.GetRolePermissionsNames(ctx, authz.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, cache.data, fmt.Sprintf(constants.CacheKeyRolePermissions, "customer"))
}

func TestGetRolePermissionsNames_CorruptCacheFallsBackToDatabase(t *testing.T) {
	repo, cache, svc := newPermissionFixture()
	cache.data[fmt.Sprintf(constants.CacheKeyRolePermissions, "technician")] = "{not json"

	names, err := svc.GetRolePermissionsNames(context.Background(), authz.RoleTechnician)
	require.NoError(t, err)
	assert.ElementsMatch(t, authz.DefaultGrants(authz.RoleTechnician), names)
	assert.Equal(t, 1, repo.calls)
}

func TestGetRolePermissionsNames_DatabaseFailureIsGeneric(t *testing.T) {
	repo, cache, svc := newPermissionFixture()
	repo.err = errors.New("connection refused")

	_, err := svc.GetRolePermissionsNames(context.Background(), authz.RoleStaff)
	assert.ErrorIs(t, err, apperrors.ErrOperationFailed)
	assert.Empty(t, cache.data)
}

func TestGetRolePermissionsNames_EmptyGrantsAreNotCached(t *testing.T) {
	repo, cache, svc := newPermissionFixture()
	repo.grants["customer"] = nil

	names, err := svc.GetRolePermissionsNames(context.Background(), authz.RoleCustomer)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Empty(t, cache.data)
}

func TestCan(t *testing.T) {
	_, _, svc := newPermissionFixture()
	ctx := context.Background()

	cases := []struct {
		actor      authz.Actor
		permission string
		want       bool
	}{
		{staff, authz.CategoriesDelete, true},
		{staff, authz.OrdersDeleteAny, true},
		{customer, authz.OrdersCreate, true},
		{customer, authz.OrdersDeleteAny, false},
		{customer, authz.ServicesCreate, false},
		{technician, authz.OrdersUpdate, true},
		{technician, authz.OrdersCreate, false},
		{technician, authz.OrdersDelete, false},
		{authz.Actor{ID: 3, Role: "guest"}, authz.OrdersView, false},
	}
	for _, tc := range cases {
		got, err := svc.Can(ctx, tc.actor, tc.permission)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.actor.Role, tc.permission)
	}
}

func TestInvalidateRolePermissionsCache(t *testing.T) {
	repo, cache, svc := newPermissionFixture()
	ctx := context.Background()

	_, err := svc.GetRolePermissionsNames(ctx, authz.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateRolePermissionsCache(ctx, authz.RoleStaff))
	assert.Empty(t, cache.data)

	_, err = svc.GetRolePermissionsNames(ctx, authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

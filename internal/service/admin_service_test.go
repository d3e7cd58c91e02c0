package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "go-inventory-qr/pkg/errors"
)

func TestAdminRequiresAdministrator(t *testing.T) {
	_, auth, admin := newAuthServices(t)
	ctx := context.Background()

	bob, err := auth.Register(ctx, "bob", "pw", "pw")
	require.NoError(t, err)
	bob.Approved = true

	_, err = admin.ListPending(ctx, bob)
	requireCode(t, err, pkgerrors.CodeForbidden)

	_, err = admin.Approve(ctx, bob, bob.ID)
	requireCode(t, err, pkgerrors.CodeForbidden)

	requireCode(t, admin.Reject(ctx, nil, bob.ID), pkgerrors.CodeForbidden)
}

func TestApproveIsIdempotent(t *testing.T) {
	f, auth, admin := newAuthServices(t)
	ctx := context.Background()
	root := createAdmin(t, f)

	carol, err := auth.Register(ctx, "carol", "pw", "pw")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		u, err := admin.Approve(ctx, root, carol.ID)
		require.NoError(t, err)
		assert.True(t, u.Approved)
	}

	_, err = admin.Approve(ctx, root, 999)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestReject(t *testing.T) {
	f, auth, admin := newAuthServices(t)
	ctx := context.Background()
	root := createAdmin(t, f)

	dave, err := auth.Register(ctx, "dave", "pw", "pw")
	require.NoError(t, err)
	require.NoError(t, admin.Reject(ctx, root, dave.ID))

	_, err = f.userRepo.FindByID(ctx, dave.ID)
	assert.Error(t, err)
	requireCode(t, admin.Reject(ctx, root, dave.ID), pkgerrors.CodeNotFound)

	requireCode(t, admin.Reject(ctx, root, root.ID), pkgerrors.CodeConflict)

	pending, err := admin.ListPending(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

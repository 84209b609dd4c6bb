package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/filestore"
	"shiningstar/internal/app/repository"
	"shiningstar/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) *filestore.FileRepository {
	t.Helper()
	store, err := filestore.NewFileRepository(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return store
}

func TestApply_BundledData(t *testing.T) {
	ctx := context.Background()
	data, err := Load(filepath.Join("..", "..", "..", "data"))
	require.NoError(t, err)
	require.NotEmpty(t, data.Services)

	store := newStore(t)
	rep, err := Apply(ctx, store, data)
	require.NoError(t, err)
	assert.Empty(t, rep.Skipped)
	assert.Equal(t, len(data.Services), rep.Services)
	assert.Equal(t, len(data.Packages), rep.Packages)

	pkg, err := store.GetPackage(ctx, "move-out-bundle")
	require.NoError(t, err)
	assert.True(t, pkg.Available)
	assert.Equal(t, 15.0, pkg.Discount)

	admin, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, role.Admin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("change-me-now")))

	// second run updates in place
	rep, err = Apply(ctx, store, data)
	require.NoError(t, err)
	assert.Zero(t, rep.Users)
	assert.Zero(t, rep.Portfolio)
	services, err := store.ListServices(ctx, repository.ServiceFilter{})
	require.NoError(t, err)
	assert.Len(t, services, len(data.Services))
}

func TestApply_SkipsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write(ServicesFile, `[
		{"name":{"en":"Oven Cleaning"},"description":{"en":"Inside and racks"},"price":60,"duration":45,"calculationType":"fixed"},
		{"name":{"en":"Rugs"},"description":{"en":"Per rug"},"price":20,"duration":30,"calculationType":"quantity"}
	]`)
	write(PackagesFile, `[
		{"name":{"en":"Broken"},"description":{"en":"x"},"services":["nope"],"price":10,"duration":10}
	]`)

	data, err := Load(dir)
	require.NoError(t, err)

	store := newStore(t)
	rep, err := Apply(context.Background(), store, data)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Services)
	assert.Zero(t, rep.Packages)
	require.Len(t, rep.Skipped, 2)
	assert.Contains(t, rep.Skipped[0], "unit is required for quantity type")
	assert.Contains(t, rep.Skipped[1], "unknown service ids: nope")

	oven, err := store.GetService(context.Background(), "oven-cleaning")
	require.NoError(t, err)
	assert.Equal(t, ds.CalculationFixed, oven.CalculationType)
}

func TestLoad_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ServicesFile), []byte(`{"not":"a list"}`), 0o600))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(UserRecord{Username: "ops", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, role.User, u.Role)
	assert.True(t, u.Active)

	again, err := NewUser(UserRecord{Username: "ops", Password: u.Password, Role: role.Admin})
	require.NoError(t, err)
	assert.Equal(t, u.Password, again.Password)

	_, err = NewUser(UserRecord{Username: "ops", Password: "pw", Role: "root"})
	assert.Error(t, err)
	_, err = NewUser(UserRecord{Username: "ops"})
	assert.Error(t, err)
}

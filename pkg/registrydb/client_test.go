package registrydb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-registry/internal/attribute"
	"profile-registry/internal/model"
	"profile-registry/internal/registry"
)

type moduleStub struct {
	cands []model.Candidate
}

func (moduleStub) Name() string                   { return "stub" }
func (m moduleStub) Candidates() []model.Candidate { return m.cands }

func openTestClient(t *testing.T, path string, opts Options) *Client {
	t.Helper()
	opts.Path = path
	client, err := Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("failed to open test registry: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestOpenCreatesRegistryFromBuiltinModules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := openTestClient(t, filepath.Join(t.TempDir(), "registry.sqlite"), Options{})

	v, err := client.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	list, err := client.List(ctx)
	require.NoError(t, err)
	want := len(attribute.Xmit{}.Candidates()) + len(attribute.Sound{}.Candidates())
	require.Len(t, list, want)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Type, list[i].Type, "equal order falls back to type")
	}

	wifi, err := client.ByName(ctx, "Wi-Fi")
	require.NoError(t, err)
	assert.Equal(t, attribute.TypeWiFi, wifi.Type)
	assert.Equal(t, "wifi", wifi.Param)
	assert.True(t, wifi.Active)

	byType, err := client.ByType(ctx, attribute.TypeMediaVolume)
	require.NoError(t, err)
	assert.Equal(t, "music", byType.Param)

	byID, err := client.ByID(ctx, wifi.ID)
	require.NoError(t, err)
	assert.Equal(t, *wifi, *byID)
}

func TestLookupMissesReturnNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := openTestClient(t, filepath.Join(t.TempDir(), "registry.sqlite"), Options{Modules: []string{"xmit"}})

	_, err := client.ByName(ctx, "Bluetooth")
	require.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, registry.ByName, nf.By)
	assert.Equal(t, "Bluetooth", nf.Name)
	assert.Equal(t, "attribute name 'Bluetooth' is not known", err.Error())

	_, err = client.ByType(ctx, 404)
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, registry.ByType, nf.By)
	assert.Equal(t, 404, nf.Type)

	_, err = client.ByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, client.SetActive(ctx, 9999, false), ErrNotFound)
	assert.ErrorIs(t, client.SetOrder(ctx, 9999, 1), ErrNotFound)
}

func TestUserEditsSurviveUpgrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.sqlite")

	first, err := Open(ctx, Options{Path: path})
	require.NoError(t, err)
	wifi, err := first.ByType(ctx, attribute.TypeWiFi)
	require.NoError(t, err)
	require.NoError(t, first.SetActive(ctx, wifi.ID, false))
	require.NoError(t, first.SetOrder(ctx, wifi.ID, 50))

	active, err := first.Active(ctx)
	require.NoError(t, err)
	for _, a := range active {
		assert.NotEqual(t, wifi.ID, a.ID)
	}
	require.NoError(t, first.Close())

	second := openTestClient(t, path, Options{Version: 2})
	v, err := second.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	got, err := second.ByID(ctx, wifi.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 50, got.Order)

	list, err := second.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, wifi.ID, list[len(list)-1].ID, "highest order sorts last")
}

func TestUpgradeReconcilesChangedModules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.sqlite")

	v1 := moduleStub{cands: []model.Candidate{
		{Name: "Wi-Fi", Type: 100, ImplementationClass: "xmit.Toggle", Param: "wifi"},
		{Name: "Legacy", Type: 101, ImplementationClass: "old.Class", Param: "x"},
	}}
	first, err := Open(ctx, Options{Path: path, Contributors: []registry.Contributor{v1}})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	v2 := moduleStub{cands: []model.Candidate{
		{Name: "Wireless", Type: 100, ImplementationClass: "xmit.Toggle", Param: "wifi"},
		{Name: "Bluetooth", Type: 102, ImplementationClass: "xmit.Toggle", Param: "bluetooth"},
	}}
	second := openTestClient(t, path, Options{Version: 2, Contributors: []registry.Contributor{v2}})

	list, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	names := map[int]string{}
	for _, a := range list {
		names[a.Type] = a.Name
	}
	assert.Equal(t, map[int]string{100: "Wireless", 101: "Legacy", 102: "Bluetooth"}, names)

	res, err := second.OnUpgrade(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 0, res.Inserted())
	assert.Equal(t, 1, res.Retained)
}

func TestOpenRefusesDowngrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.sqlite")

	c, err := Open(ctx, Options{Path: path, Version: 3})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = Open(ctx, Options{Path: path, Version: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "downgrade")
}

func TestOpenRejectsUnknownModule(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), Options{
		Path:    filepath.Join(t.TempDir(), "registry.sqlite"),
		Modules: []string{"xmit", "bluetooth"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bluetooth")
}

func TestAddRegistryEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := openTestClient(t, filepath.Join(t.TempDir(), "registry.sqlite"), Options{Modules: []string{"sound"}})

	id, err := client.AddRegistryEntry(ctx, "Custom", 500, "custom.Handler", "{}", 7)
	require.NoError(t, err)

	got, err := client.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Attribute{
		ID: id, Name: "Custom", Type: 500, Active: true,
		ImplementationClass: "custom.Handler", Param: "{}", Order: 7,
	}, *got)

	_, err = client.AddRegistryEntry(ctx, "Clash", attribute.TypeRingerMode, "x", "y", 0)
	assert.Error(t, err)
}

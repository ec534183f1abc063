package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	ids := []string{
		EndpointRegister, EndpointLogin, EndpointListApplications, EndpointSubmitApplication,
		EndpointGetApplication, EndpointAdminList, EndpointAdminGetApplication,
		EndpointRunKYC, EndpointRunCredit, EndpointRunEligibility,
	}
	assert.Len(t, reg.Endpoints, len(ids))
	for _, id := range ids {
		ep, ok := reg.Lookup(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, ep.Method, id)
	}

	login, _ := reg.Lookup(EndpointLogin)
	assert.False(t, login.Auth)
	assert.NotNil(t, login.ResponseSchema)

	kyc, _ := reg.Lookup(EndpointRunKYC)
	assert.True(t, kyc.Admin)
	assert.Equal(t, "/kyc/{id}", kyc.Path)
}

func TestExpand(t *testing.T) {
	ep := Endpoint{ID: "x", Method: "GET", Path: "/applications/{id}"}

	path, err := ep.Expand(map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/applications/42", path)

	_, err = ep.Expand(nil)
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"version":"2","endpoints":[{"id":"a","method":"GET","path":"/a"}]}`), 0o600))
	reg, err := LoadRegistry(good)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"endpoints":[{"id":"a","method":"GET","path":"/a"},{"id":"a","method":"GET","path":"/b"}]}`), 0o600))
	_, err = LoadRegistry(dup)
	assert.Error(t, err)

	relative := filepath.Join(dir, "rel.json")
	require.NoError(t, os.WriteFile(relative, []byte(`{"endpoints":[{"id":"a","method":"GET","path":"a"}]}`), 0o600))
	_, err = LoadRegistry(relative)
	assert.Error(t, err)

	_, err = LoadRegistry(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

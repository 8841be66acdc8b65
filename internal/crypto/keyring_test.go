package crypto

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestNewKeyring_PrefersEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "from-env")

	k := NewKeyring()
	require.IsType(t, &envKeyring{}, k)
	assert.True(t, k.IsAvailable())

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	assert.Error(t, k.SetKey("new"))
	assert.Error(t, k.DeleteKey())
}

func TestSystemKeyring_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "")
	os.Unsetenv(EnvKey)

	k := NewKeyring()
	require.IsType(t, &systemKeyring{}, k)
	assert.True(t, k.IsAvailable())

	_, err := k.GetKey()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, k.SetKey("s3cret"))
	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)

	require.NoError(t, k.DeleteKey())
	assert.ErrorIs(t, k.DeleteKey(), ErrKeyNotFound)
}

func TestSetKey_RejectsEmpty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, (&systemKeyring{}).SetKey(""))
	assert.Error(t, (&envKeyring{}).SetKey(""))
}

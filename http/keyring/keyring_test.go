package keyring_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/keyring"
)

type testKey string

const (
	rk testKey = "requestID"
	ik testKey = "ipAddr"
	ok testKey = "otherKey"
)

func (tk testKey) Key() string    { return string(tk) }
func (tk testKey) String() string { return string(tk) }

func TestKeyring(t *testing.T) {
	// Arrange
	kr := keyring.NewKeyring(nil, nil)

	// Act + Assert
	require.Nil(t, kr)

	// Arrange
	kr = keyring.NewKeyring(rk, nil)

	// Act + Assert
	require.Nil(t, kr)

	// Arrange
	kr = keyring.NewKeyring(rk, ik)

	// Act + Assert
	require.Equal(t, rk, kr.RequestIDKey())
	require.Equal(t, rk, kr.Key(rk.Key()))
	require.Equal(t, ik, kr.IpAddrKey())
	require.Equal(t, ik, kr.Key(ik.Key()))

	// Arrange
	child := keyring.WithKeyring(kr, ok)

	// Act + Assert
	require.Nil(t, kr.Key(ok.Key()))
	require.Equal(t, rk, child.RequestIDKey())
	require.Equal(t, ik, child.IpAddrKey())
	require.Equal(t, ok, child.Key(ok.Key()))
}

func TestKey(t *testing.T) {
	// Arrange
	k := keyring.Key("RequestIDKey")

	// Act + Assert
	require.Equal(t, "RequestIDKey", k.Key())
	require.Equal(t, "http context key: RequestIDKey", k.String())
}

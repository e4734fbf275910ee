package remote_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowmart/storefront/core/remote"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	err := remote.New(remote.KindAuthentication, 401, "token expired", nil)
	assert.Equal(t, remote.KindAuthentication, remote.KindOf(err))
	assert.True(t, remote.IsAuthentication(err))
	assert.False(t, remote.IsNetwork(err))

	wrapped := fmt.Errorf("refreshing profile: %w", err)
	assert.Equal(t, remote.KindAuthentication, remote.KindOf(wrapped))

	assert.Equal(t, remote.KindUnknown, remote.KindOf(errors.New("plain")))
	assert.Equal(t, remote.KindUnknown, remote.KindOf(nil))
}

func TestMessage(t *testing.T) {
	t.Parallel()

	err := remote.New(remote.KindBusiness, 400, "Sản phẩm đã hết hàng", nil)
	assert.Equal(t, "Sản phẩm đã hết hàng", remote.Message(err))
	assert.Empty(t, remote.Message(errors.New("plain")))
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: timeout")
	err := remote.New(remote.KindNetwork, 0, "", cause)
	assert.Contains(t, err.Error(), "network")
	assert.ErrorIs(t, err, cause)
}

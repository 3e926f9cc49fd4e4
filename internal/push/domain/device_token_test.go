package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceInfoFingerprint(t *testing.T) {
	info := DeviceInfo{Platform: "web", Browser: "firefox", AppVersion: "1.4.0", InstallID: "install-a"}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, info.Fingerprint(), info.Fingerprint())
	})

	t.Run("browser does not affect fingerprint", func(t *testing.T) {
		other := info
		other.Browser = "chrome"
		assert.Equal(t, info.Fingerprint(), other.Fingerprint())
	})

	t.Run("different install differs", func(t *testing.T) {
		other := info
		other.InstallID = "install-b"
		assert.NotEqual(t, info.Fingerprint(), other.Fingerprint())
	})

	t.Run("fixed length", func(t *testing.T) {
		assert.Len(t, info.Fingerprint(), 32)
	})
}

func TestDeviceTypeValid(t *testing.T) {
	assert.True(t, DeviceTypeWeb.Valid())
	assert.True(t, DeviceTypeAndroid.Valid())
	assert.True(t, DeviceTypeIOS.Valid())
	assert.False(t, DeviceType("desktop").Valid())
	assert.False(t, DeviceType("").Valid())
}

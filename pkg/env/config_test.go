package env

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialOptions(t *testing.T) {
	u, err := url.Parse("serial:///dev/ttyUSB0?baud=57600&read-timeout=500ms")
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB0", u.Path)
	opts, err := serialOptions(u)
	require.NoError(t, err)
	require.Equal(t, 57600, opts.BaudRate)
	require.Equal(t, 500*time.Millisecond, opts.ReadTimeout)
}

func TestSerialOptionsInvalid(t *testing.T) {
	u, _ := url.Parse("serial:///dev/ttyUSB0?baud=fast")
	_, err := serialOptions(u)
	require.Error(t, err)

	u, _ = url.Parse("serial:///dev/ttyUSB0?read-timeout=later")
	_, err = serialOptions(u)
	require.Error(t, err)
}

func TestOpenRejectsBadURLs(t *testing.T) {
	_, err := (&Config{DeviceURL: "ftp://host/dev"}).Open()
	require.Error(t, err)

	_, err = (&Config{DeviceURL: "serial://"}).Open()
	require.Error(t, err)

	// mqtt bridge needs a topic prefix before it dials anything
	_, err = (&Config{DeviceURL: "mqtt://broker:1883"}).Open()
	require.Error(t, err)
}

// Package env provides environment-based configuration for the
// flasher and opens the configured device transport.
package env

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/transport/mqttbridge"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/transport/serialport"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/transport/wsbridge"
)

// Config provides common options to reach a device.
type Config struct {
	// DeviceURL locates the device:
	//   serial:///dev/ttyUSB0?baud=115200&read-timeout=500ms
	//   mqtt://host:1883/lab/node-1
	//   ws://host:8080/node-1
	// A bare path is treated as a serial device.
	DeviceURL string
}

var defaultConfig = Config{}

func init() {
	if val := os.Getenv("ENFLASH_DEVICE"); val != "" {
		defaultConfig.DeviceURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.DeviceURL, "device", defaultConfig.DeviceURL, "Device URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Open opens the transport for the configured device.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	u, err := url.Parse(c.DeviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid device URL: %v", err)
	}
	switch u.Scheme {
	case "", "serial":
		opts, err := serialOptions(u)
		if err != nil {
			return nil, err
		}
		device := u.Path
		if device == "" {
			device = u.Opaque
		}
		if device == "" {
			return nil, fmt.Errorf("serial device path required")
		}
		return serialport.Open(device, opts)
	case "mqtt", "ssl":
		return mqttbridge.Dial(c.DeviceURL)
	case "ws", "wss":
		return wsbridge.Dial(c.DeviceURL, "")
	default:
		return nil, fmt.Errorf("unknown device URL scheme: %q", u.Scheme)
	}
}

func serialOptions(u *url.URL) (opts serialport.Options, err error) {
	if val := u.Query().Get("baud"); val != "" {
		if opts.BaudRate, err = strconv.Atoi(val); err != nil {
			return opts, fmt.Errorf("invalid baud: %v", err)
		}
	}
	if val := u.Query().Get("read-timeout"); val != "" {
		if opts.ReadTimeout, err = time.ParseDuration(val); err != nil {
			return opts, fmt.Errorf("invalid read-timeout: %v", err)
		}
	}
	return opts, nil
}

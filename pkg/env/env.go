// Package env provides common daemon configuration.
package env

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
)

// Config provides common options to set up a devlink daemon.
type Config struct {
	// DeviceID identifies the device in telemetry topics.
	DeviceID string
	// ListenWS is the websocket listen address; empty serves stdio.
	ListenWS string
	// ListenTCP is the raw TCP listen address; empty disables it.
	ListenTCP string
	// MQTTBrokerURL enables the telemetry bridge when non-empty.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// Pins is the supported pin set, comma separated.
	Pins string
	// BufferSize is the receive line buffer capacity.
	BufferSize int
	// EmitInterval is the telemetry rate limit.
	EmitInterval time.Duration
	// Echo enables terminal echo, prompt and banner.
	Echo bool
}

var defaultConfig = Config{
	BufferSize:   128,
	EmitInterval: 100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("DEVLINK_ID"); val != "" {
		defaultConfig.DeviceID = val
	} else {
		defaultConfig.DeviceID = MachineID()
	}
	if val := os.Getenv("DEVLINK_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("DEVLINK_LISTEN_WS"); val != "" {
		defaultConfig.ListenWS = val
	}
	if val := os.Getenv("DEVLINK_LISTEN_TCP"); val != "" {
		defaultConfig.ListenTCP = val
	}
}

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		return "unknown"
	}
	return id
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.DeviceID, "id", defaultConfig.DeviceID, "Device ID.")
	flag.StringVar(&defaultConfig.ListenWS, "listen-ws", defaultConfig.ListenWS, "Websocket listen address.")
	flag.StringVar(&defaultConfig.ListenTCP, "listen-tcp", defaultConfig.ListenTCP, "TCP listen address.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL for the telemetry bridge.")
	flag.StringVar(&defaultConfig.Pins, "pins", defaultConfig.Pins, "Supported pin ids, comma separated.")
	flag.IntVar(&defaultConfig.BufferSize, "buffer-size", defaultConfig.BufferSize, "Receive line buffer capacity.")
	flag.DurationVar(&defaultConfig.EmitInterval, "emit-interval", defaultConfig.EmitInterval, "Telemetry emit interval.")
	flag.BoolVar(&defaultConfig.Echo, "echo", defaultConfig.Echo, "Echo input and show a prompt.")
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

// PinIDs parses the configured pin set; nil means use the built-in
// default set.
func (c *Config) PinIDs() ([]int, error) {
	if c.Pins == "" {
		return nil, nil
	}
	tokens := strings.Split(c.Pins, ",")
	ids := make([]int, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

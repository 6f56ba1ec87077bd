// Package env sets up a display session from flags, environment and an
// optional YAML file.
package env

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/vfd.go/pkg/vfd"
)

// Config provides options to open a display session.
type Config struct {
	// File is an optional YAML file overlaid onto the config.
	File string `yaml:"-"`

	// ID names the display on the MQTT broker, defaults to machine ID.
	ID string `yaml:"id"`

	// Device is the transport URL, e.g.
	// hidraw://auto, hidraw:///dev/hidraw2, serial:///dev/ttyUSB0?baud=9600,
	// tcp://host:port, ws://host:port/path, sim://
	Device string `yaml:"device"`

	// Settle is the pause after each packet.
	Settle time.Duration `yaml:"settle"`

	// MQTTBrokerURL specifies the MQTT broker, empty disables MQTT.
	// e.g. mqtt://host:port/topic-prefix?codec=proto
	MQTTBrokerURL string `yaml:"mqtt"`

	// Text is shown after the display is opened.
	Text string `yaml:"text"`
}

var defaultConfig = Config{
	Device: "hidraw://auto",
	Settle: vfd.DefaultSettle,
}

func init() {
	if val := os.Getenv("VFD_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
	if val := os.Getenv("VFD_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("VFD_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.File, "config", defaultConfig.File, "YAML config file, values override flags.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Display ID, machine ID if empty.")
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Display transport URL.")
	flag.DurationVar(&defaultConfig.Settle, "settle", defaultConfig.Settle, "Pause after each packet.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.Text, "text", defaultConfig.Text, "Initial text.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations, overlaid with
// File if set.
func NewConfig() (*Config, error) {
	conf := defaultConfig
	if conf.File != "" {
		if err := conf.LoadFile(conf.File); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// MustNewConfig creates a Config and fails on error.
func MustNewConfig() *Config {
	conf, err := NewConfig()
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

// LoadFile overlays values present in a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return c.Parse(data)
}

// Parse overlays values present in YAML data.
func (c *Config) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	return nil
}

// DisplayID returns ID or the machine ID.
func (c *Config) DisplayID() string {
	if c.ID != "" {
		return c.ID
	}
	return MachineID()
}

// Open opens the transport and starts a display session.
func (c *Config) Open() (*vfd.Device, error) {
	w, err := OpenTransport(c.Device)
	if err != nil {
		return nil, err
	}
	ch := vfd.NewChannel(w)
	ch.Settle = c.Settle
	dev, err := vfd.Open(ch)
	if err != nil {
		return nil, err
	}
	if c.Text != "" {
		if err = dev.SetText(c.Text); err != nil {
			dev.Close()
			return nil, err
		}
	}
	return dev, nil
}

// MustOpen opens the display and fails on error.
func (c *Config) MustOpen() *vfd.Device {
	dev, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return dev
}

// Package mqtt exposes a display's indicators and text over MQTT.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/vfd.go/pkg/vfd"
)

// Topics relative to <prefix><id>/:
//
//   meta                         retained description of the display
//   leds/<name>/brightness       retained current level
//   leds/<name>/brightness/set   level requests
//   text                         retained current text
//   text/set                     text requests
//   error                        failed requests
const (
	topicMeta      = "meta"
	topicLeds      = "leds/"
	topicLevel     = "/brightness"
	topicText      = "text"
	topicSetSuffix = "/set"
	topicError     = "error"
)

type publisher interface {
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

type subscriber interface {
	Sub(topic string, handler Handler) paho.Token
}

// Meta describes the display to subscribers.
type Meta struct {
	Width      int             `json:"width"`
	Indicators []IndicatorMeta `json:"indicators"`
}

// IndicatorMeta describes an indicator.
type IndicatorMeta struct {
	Name string `json:"name"`
	Max  int    `json:"max"`
}

// Host binds a Device to MQTT topics.
type Host struct {
	Queue  *Queue
	Device *vfd.Device
	ID     string
	Codec  Codec

	pub publisher
}

// NewHost creates a Host from a broker URL.
// The query parameter codec selects the payload codec.
func NewHost(brokerURL, id string, dev *vfd.Device) (*Host, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, err
	}
	codec, err := CodecByName(u.Query().Get("codec"))
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+id+"/"+topicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("vfd:" + id)
	}
	h := &Host{
		Queue:  NewQueue(opts, topicPrefix),
		Device: dev,
		ID:     id,
		Codec:  codec,
	}
	h.pub = h.Queue
	h.Queue.OnConnect = func(*Queue) { h.publishAll() }
	return h, nil
}

// Name implements framework.Named.
func (h *Host) Name() string {
	return "mqtt-host"
}

// Run implements Runnable.
func (h *Host) Run(ctx context.Context) error {
	token := h.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	if err := h.subscribe(h.Queue); err != nil {
		h.Queue.Close()
		return err
	}
	<-ctx.Done()
	h.Queue.PubWith(h.topic(topicMeta), nil, 1, true).Wait()
	h.Queue.Close()
	return nil
}

func (h *Host) subscribe(s subscriber) error {
	subs := map[string]Handler{
		h.topic(topicLeds + "+" + topicLevel + topicSetSuffix): h.handleLevel,
		h.topic(topicText + topicSetSuffix):                    h.handleText,
	}
	for topic, handler := range subs {
		token := s.Sub(topic, handler)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("subscribe %s: %v", topic, err)
		}
	}
	return nil
}

func (h *Host) topic(name string) string {
	return h.ID + "/" + name
}

func (h *Host) publish(name string, payload []byte, retain bool) {
	h.pub.PubWith(h.topic(name), payload, 1, retain)
}

func (h *Host) meta() Meta {
	m := Meta{Width: vfd.Width}
	for _, ind := range h.Device.Indicators() {
		m.Indicators = append(m.Indicators, IndicatorMeta{Name: ind.Name(), Max: ind.MaxLevel()})
	}
	return m
}

func (h *Host) publishAll() {
	meta, err := json.Marshal(h.meta())
	if err != nil {
		panic(err)
	}
	h.publish(topicMeta, meta, true)
	for _, ind := range h.Device.Indicators() {
		h.publishLevel(ind)
	}
	h.publishText()
}

func (h *Host) publishLevel(ind *vfd.Indicator) {
	payload, err := h.Codec.EncodeLevel(ind.Level())
	if err != nil {
		glog.Errorf("encode level of %s: %v", ind.Name(), err)
		return
	}
	h.publish(topicLeds+ind.Name()+topicLevel, payload, true)
}

func (h *Host) publishText() {
	payload, err := h.Codec.EncodeText(h.Device.ReadText())
	if err != nil {
		glog.Errorf("encode text: %v", err)
		return
	}
	h.publish(topicText, payload, true)
}

func (h *Host) reportError(topic string, err error) {
	glog.Errorf("%s: %v", topic, err)
	h.publish(topicError, []byte(fmt.Sprintf("%s: %v", topic, err)), false)
}

func (h *Host) handleLevel(topic string, payload []byte) {
	name := strings.TrimPrefix(topic, h.topic(topicLeds))
	name = strings.TrimSuffix(name, topicLevel+topicSetSuffix)
	ind, ok := h.Device.Indicator(name)
	if !ok {
		h.reportError(topic, fmt.Errorf("unknown indicator %q", name))
		return
	}
	level, err := h.Codec.DecodeLevel(payload)
	if err == nil {
		err = ind.Set(level)
	}
	if err != nil {
		h.reportError(topic, err)
		if _, ok := err.(*vfd.TransportError); !ok {
			return
		}
	}
	h.publishLevel(ind)
}

func (h *Host) handleText(topic string, payload []byte) {
	text, err := h.Codec.DecodeText(payload)
	if err == nil {
		_, err = h.Device.WriteText(text)
	}
	if err != nil {
		h.reportError(topic, err)
		if _, ok := err.(*vfd.TransportError); !ok {
			return
		}
	}
	h.publishText()
}

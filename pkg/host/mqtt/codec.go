package mqtt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes/wrappers"
)

// Codec converts indicator levels and text to and from payloads.
type Codec interface {
	EncodeLevel(int) ([]byte, error)
	DecodeLevel([]byte) (int, error)
	EncodeText([]byte) ([]byte, error)
	DecodeText([]byte) ([]byte, error)
}

// CodecByName returns the codec registered as name. Empty name is "plain".
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "plain":
		return PlainCodec{}, nil
	case "proto":
		return ProtoCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

// PlainCodec uses decimal levels and raw text.
type PlainCodec struct{}

// EncodeLevel implements Codec.
func (PlainCodec) EncodeLevel(level int) ([]byte, error) {
	return []byte(strconv.Itoa(level)), nil
}

// DecodeLevel implements Codec.
func (PlainCodec) DecodeLevel(payload []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(payload)))
}

// EncodeText implements Codec.
func (PlainCodec) EncodeText(text []byte) ([]byte, error) {
	return text, nil
}

// DecodeText implements Codec.
func (PlainCodec) DecodeText(payload []byte) ([]byte, error) {
	return payload, nil
}

// ProtoCodec uses protobuf wrapper messages.
type ProtoCodec struct{}

// EncodeLevel implements Codec.
func (ProtoCodec) EncodeLevel(level int) ([]byte, error) {
	return proto.Marshal(&wrappers.UInt32Value{Value: uint32(level)})
}

// DecodeLevel implements Codec.
func (ProtoCodec) DecodeLevel(payload []byte) (int, error) {
	var msg wrappers.UInt32Value
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return 0, err
	}
	return int(msg.Value), nil
}

// EncodeText implements Codec.
func (ProtoCodec) EncodeText(text []byte) ([]byte, error) {
	return proto.Marshal(&wrappers.BytesValue{Value: text})
}

// DecodeText implements Codec.
func (ProtoCodec) DecodeText(payload []byte) ([]byte, error) {
	var msg wrappers.BytesValue
	if err := proto.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	return msg.Value, nil
}

// Package jsonx 统一的 JSON 编解码入口，底层为 json-iterator
package jsonx

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal    = json.Marshal
	Unmarshal  = json.Unmarshal
	NewDecoder = json.NewDecoder
	NewEncoder = json.NewEncoder
	Valid      = json.Valid
)

// RawMessage 与 gin 绑定层共用标准库类型
type RawMessage = stdjson.RawMessage

type Number = stdjson.Number

type Decoder = jsoniter.Decoder

type Encoder = jsoniter.Encoder

package messages

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes TextBlock with a kind discriminator so decode logic
// can recover the concrete block type from a generic Content slice.
func (b TextBlock) MarshalJSON() ([]byte, error) {
	type alias TextBlock
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: b.blockKind(), alias: alias(b)})
}

// MarshalJSON encodes ThinkingBlock with a kind discriminator.
func (b ThinkingBlock) MarshalJSON() ([]byte, error) {
	type alias ThinkingBlock
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: b.blockKind(), alias: alias(b)})
}

// MarshalJSON encodes ToolUseBlock with a kind discriminator.
func (b ToolUseBlock) MarshalJSON() ([]byte, error) {
	type alias ToolUseBlock
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: b.blockKind(), alias: alias(b)})
}

// MarshalJSON encodes ToolResultBlock with a kind discriminator.
func (b ToolResultBlock) MarshalJSON() ([]byte, error) {
	type alias ToolResultBlock
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: b.blockKind(), alias: alias(b)})
}

// decodeContentBlock recovers the concrete ContentBlock implementation from
// its kind discriminator.
func decodeContentBlock(raw json.RawMessage) (ContentBlock, error) {
	var disc struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &disc); err != nil {
		return nil, fmt.Errorf("decode content block kind: %w", err)
	}
	switch disc.Kind {
	case "text":
		var b TextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "thinking":
		var b ThinkingBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "tool_use":
		var b ToolUseBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case "tool_result":
		var b ToolResultBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown content block kind %q", disc.Kind)
	}
}

// MarshalJSON encodes Message, preserving the concrete ContentBlock types
// stored in Content via each block's kind discriminator.
func (m Message) MarshalJSON() ([]byte, error) {
	type alias struct {
		Role    Role           `json:"role"`
		Content []ContentBlock `json:"content"`
		Meta    map[string]any `json:"meta,omitempty"`
	}
	return json.Marshal(alias{Role: m.Role, Content: m.Content, Meta: m.Meta})
}

// UnmarshalJSON decodes Message, recovering concrete ContentBlock types.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    Role              `json:"role"`
		Content []json.RawMessage `json:"content"`
		Meta    map[string]any    `json:"meta"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role
	m.Meta = raw.Meta
	if len(raw.Content) == 0 {
		m.Content = nil
		return nil
	}
	m.Content = make([]ContentBlock, 0, len(raw.Content))
	for _, blockRaw := range raw.Content {
		block, err := decodeContentBlock(blockRaw)
		if err != nil {
			return err
		}
		m.Content = append(m.Content, block)
	}
	return nil
}

// knownChatRequestKeys lists every recognised top-level JSON key for
// ChatRequest, used to split a decoded mapping between named fields and
// Extensions.
var knownChatRequestKeys = map[string]struct{}{
	"model": {}, "messages": {}, "tools": {}, "tool_choice": {},
	"max_tokens": {}, "temperature": {}, "response_format": {},
}

// MarshalJSON encodes ChatRequest's recognised fields plus Extensions so
// unknown top-level keys observed on decode survive a subsequent encode.
func (r ChatRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownChatRequestKeys)+len(r.Extensions))
	for k, v := range r.Extensions {
		out[k] = v
	}
	out["model"] = r.Model
	out["messages"] = r.Messages
	out["tools"] = r.Tools
	out["tool_choice"] = r.ToolChoice
	out["max_tokens"] = r.MaxTokens
	out["temperature"] = r.Temperature
	out["response_format"] = r.ResponseFormat
	return json.Marshal(out)
}

// UnmarshalJSON decodes ChatRequest, routing unrecognised top-level keys
// into Extensions.
func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decode := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(v, dst)
	}
	if err := decode("model", &r.Model); err != nil {
		return err
	}
	if err := decode("messages", &r.Messages); err != nil {
		return err
	}
	if err := decode("tools", &r.Tools); err != nil {
		return err
	}
	if err := decode("tool_choice", &r.ToolChoice); err != nil {
		return err
	}
	if err := decode("max_tokens", &r.MaxTokens); err != nil {
		return err
	}
	if err := decode("temperature", &r.Temperature); err != nil {
		return err
	}
	if err := decode("response_format", &r.ResponseFormat); err != nil {
		return err
	}

	r.Extensions = make(map[string]any)
	for k, v := range raw {
		if _, known := knownChatRequestKeys[k]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		r.Extensions[k] = val
	}
	if len(r.Extensions) == 0 {
		r.Extensions = nil
	}
	return nil
}

// knownChatResponseKeys lists every recognised top-level JSON key for
// ChatResponse.
var knownChatResponseKeys = map[string]struct{}{
	"content": {}, "tool_calls": {}, "usage": {}, "stop_reason": {}, "degradation": {},
}

// MarshalJSON encodes ChatResponse's recognised fields plus Extensions.
func (r ChatResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownChatResponseKeys)+len(r.Extensions))
	for k, v := range r.Extensions {
		out[k] = v
	}
	out["content"] = r.Content
	out["tool_calls"] = r.ToolCalls
	out["usage"] = r.Usage
	out["stop_reason"] = r.StopReason
	out["degradation"] = r.Degradation
	return json.Marshal(out)
}

// UnmarshalJSON decodes ChatResponse, routing unrecognised top-level keys
// into Extensions.
func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decode := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(v, dst)
	}
	if err := decode("content", &r.Content); err != nil {
		return err
	}
	if err := decode("tool_calls", &r.ToolCalls); err != nil {
		return err
	}
	if err := decode("usage", &r.Usage); err != nil {
		return err
	}
	if err := decode("stop_reason", &r.StopReason); err != nil {
		return err
	}
	if err := decode("degradation", &r.Degradation); err != nil {
		return err
	}

	r.Extensions = make(map[string]any)
	for k, v := range raw {
		if _, known := knownChatResponseKeys[k]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		r.Extensions[k] = val
	}
	if len(r.Extensions) == 0 {
		r.Extensions = nil
	}
	return nil
}

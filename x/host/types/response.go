package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Response is returned by contract entry points. Messages are dispatched by the
// host in order, inside the same transaction.
type Response struct {
	Messages   []SubMsg        `json:"messages"`
	Attributes []sdk.Attribute `json:"attributes"`
	Events     sdk.Events      `json:"events"`
	Data       []byte          `json:"data,omitempty"`
}

// NewResponse returns an empty response.
func NewResponse() *Response {
	return &Response{}
}

// AddAttribute appends a key/value pair to the response.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, sdk.NewAttribute(key, value))
	return r
}

// AddAttributes appends several attributes.
func (r *Response) AddAttributes(attrs ...sdk.Attribute) *Response {
	r.Attributes = append(r.Attributes, attrs...)
	return r
}

// AddMessage appends a fire-and-forget message.
func (r *Response) AddMessage(msg CosmosMsg) *Response {
	r.Messages = append(r.Messages, SubMsg{Msg: msg, ReplyOn: ReplyNever})
	return r
}

// AddMessages appends several fire-and-forget messages.
func (r *Response) AddMessages(msgs ...CosmosMsg) *Response {
	for _, msg := range msgs {
		r.AddMessage(msg)
	}
	return r
}

// AddSubMessage appends a message with a reply continuation.
func (r *Response) AddSubMessage(sub SubMsg) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

// AddEvent appends a custom event.
func (r *Response) AddEvent(event sdk.Event) *Response {
	r.Events = append(r.Events, event)
	return r
}

// SetData sets the response data.
func (r *Response) SetData(bz []byte) *Response {
	r.Data = bz
	return r
}

// Attribute returns the value of the first attribute with the given key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Package wire implements the JSON frame format exchanged over the
// quizler socket: a `ty`-discriminated envelope carrying client
// requests, server responses (echoing the request's `rid`), and server
// events (which never carry a rid).
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/jacobtread/quizler/internal/game"
	"github.com/jacobtread/quizler/internal/quiz"
)

// RequestType discriminates the inbound frames a Session accepts.
type RequestType string

const (
	ReqInitialize RequestType = "Initialize"
	ReqConnect    RequestType = "Connect"
	ReqJoin       RequestType = "Join"
	ReqReady      RequestType = "Ready"
	ReqHostAction RequestType = "HostAction"
	ReqAnswer     RequestType = "Answer"
	ReqKick       RequestType = "Kick"
)

// InboundFrame is the raw shape of every client->server message: a
// discriminant, an optional request id, and the rest of the fields
// inlined per-type. Decoded in two passes since the field set depends
// on Ty.
type InboundFrame struct {
	Ty  RequestType `json:"ty"`
	Rid *int64      `json:"rid,omitempty"`

	UUID  string          `json:"uuid,omitempty"`
	Token string          `json:"token,omitempty"`
	Name  string          `json:"name,omitempty"`
	Action game.HostAction `json:"action,omitempty"`
	Answer json.RawMessage `json:"answer,omitempty"`
	ID     int64           `json:"id,omitempty"`
}

// DecodeInbound parses one client frame. A malformed frame yields
// (nil, err); the caller maps that to a MalformedMessage response.
func DecodeInbound(data []byte) (*InboundFrame, error) {
	var f InboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("wire: malformed frame: %w", err)
	}
	switch f.Ty {
	case ReqInitialize, ReqConnect, ReqJoin, ReqReady, ReqHostAction, ReqAnswer, ReqKick:
	default:
		return nil, fmt.Errorf("wire: unknown request type %q", f.Ty)
	}
	return &f, nil
}

// DecodeAnswer parses the inlined `answer` field against quiz.Answer's
// own tagged-union decoder.
func (f *InboundFrame) DecodeAnswer() (quiz.Answer, error) {
	var a quiz.Answer
	if len(f.Answer) == 0 {
		return a, fmt.Errorf("wire: missing answer payload")
	}
	err := json.Unmarshal(f.Answer, &a)
	return a, err
}

// RecoverRid best-effort extracts just the rid field from a frame that
// otherwise failed to decode (e.g. an unknown ty), so a MalformedMessage
// response can still be correlated to its request.
func RecoverRid(data []byte) (int64, bool) {
	var partial struct {
		Rid *int64 `json:"rid"`
	}
	if err := json.Unmarshal(data, &partial); err != nil || partial.Rid == nil {
		return 0, false
	}
	return *partial.Rid, true
}

// ResponseType discriminates outbound response frames.
type ResponseType string

const (
	RespJoined ResponseType = "Joined"
	RespOk     ResponseType = "Ok"
	RespError  ResponseType = "Error"
)

// OutboundResponse answers one inbound request, echoing its rid.
type OutboundResponse struct {
	Ty  ResponseType `json:"ty"`
	Rid *int64       `json:"rid,omitempty"`

	ID     int64            `json:"id,omitempty"`
	Token  string           `json:"token,omitempty"`
	Config *quiz.Config     `json:"config,omitempty"`
	Error  game.ErrorKind   `json:"error,omitempty"`
}

// FromReply translates a game.Reply into the wire response shape.
func FromReply(rid *int64, r game.Reply) OutboundResponse {
	switch r.Kind {
	case game.ReplyJoined:
		return OutboundResponse{Ty: RespJoined, Rid: rid, ID: r.PlayerID, Token: r.Token, Config: r.Config}
	case game.ReplyError:
		return OutboundResponse{Ty: RespError, Rid: rid, Error: r.Err}
	default:
		return OutboundResponse{Ty: RespOk, Rid: rid}
	}
}

func ErrorResponse(rid *int64, kind game.ErrorKind) OutboundResponse {
	return OutboundResponse{Ty: RespError, Rid: rid, Error: kind}
}

// MarshalEvent renders a game.Event as the wire's flat `{ty, ...fields}`
// JSON object; events never carry a rid.
func MarshalEvent(ev game.Event) ([]byte, error) {
	type withTy struct {
		Ty string `json:"ty"`
	}
	base, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	tyTag, err := json.Marshal(withTy{Ty: string(ev.Type)})
	if err != nil {
		return nil, err
	}
	var tyMap map[string]json.RawMessage
	_ = json.Unmarshal(tyTag, &tyMap)
	for k, v := range tyMap {
		merged[k] = v
	}
	return json.Marshal(merged)
}

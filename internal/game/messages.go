package game

import "github.com/jacobtread/quizler/internal/quiz"

// HostAction is the action field of a HostAction request.
type HostAction string

const (
	ActionStart  HostAction = "Start"
	ActionCancel HostAction = "Cancel"
	ActionSkip   HostAction = "Skip"
	ActionNext   HostAction = "Next"
	ActionReset  HostAction = "Reset"
)

// Requests the Game actor answers via Ask, each carrying the
// requesting session's id and (for the first contact) its SessionRef
// so the Game can register it.

type JoinRequest struct {
	SessionID int64
	Session   SessionRef
	Name      string
}

type ReadyRequest struct {
	SessionID int64
}

type AnswerRequest struct {
	SessionID int64
	Answer    quiz.Answer
}

type HostActionRequest struct {
	SessionID int64
	Action    HostAction
}

type KickRequest struct {
	SessionID int64
	Target    int64
}

// SessionDisconnected is sent (fire-and-forget, not Ask) when a
// Session's channel closes. Abrupt distinguishes a lost connection
// from a clean close.
type SessionDisconnected struct {
	SessionID int64
	Abrupt    bool
}

// ImageRequest asks the Game for one uploaded image's bytes, used by
// the HTTP image handler. Answered via Ask.
type ImageRequest struct {
	UUID string
}

type ImageReply struct {
	Found       bool
	Bytes       []byte
	ContentType string
}

// ReplyKind discriminates the three shapes a request-handling reply
// can take, mirroring the wire response union.
type ReplyKind string

const (
	ReplyJoined ReplyKind = "Joined"
	ReplyOk     ReplyKind = "Ok"
	ReplyError  ReplyKind = "Error"
)

// Reply is what Join/Ready/Answer/HostAction/Kick all answer with via
// ctx.Reply.
type Reply struct {
	Kind ReplyKind

	PlayerID int64
	Token    string
	Config   *quiz.Config

	Err ErrorKind
}

func ok() Reply                    { return Reply{Kind: ReplyOk} }
func errReply(kind ErrorKind) Reply { return Reply{Kind: ReplyError, Err: kind} }

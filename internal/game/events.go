package game

import "github.com/jacobtread/quizler/internal/quiz"

// SessionRef is the Game's weak handle back to a connected Session: an
// id plus a way to deliver events. The Game never reaches into a
// Session's internals through it.
type SessionRef interface {
	ID() int64
	Deliver(event Event)
}

// EventType discriminates the events a Game broadcasts.
type EventType string

const (
	EventPlayerData EventType = "PlayerData"
	EventGameState  EventType = "GameState"
	EventTimeSync   EventType = "TimeSync"
	EventQuestion   EventType = "Question"
	EventScore      EventType = "Score"
	EventScores     EventType = "Scores"
	EventKicked     EventType = "Kicked"
)

// Event is a server→client event frame; Payload's concrete type
// depends on Type.
type Event struct {
	Type    EventType
	Payload interface{}
}

type PlayerDataPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GameStatePayload struct {
	State Phase `json:"state"`
}

type TimeSyncPayload struct {
	TotalMs   int64 `json:"total"`
	ElapsedMs int64 `json:"elapsed"`
}

type QuestionPayload struct {
	Question quiz.Question `json:"question"`
}

type ScorePayload struct {
	Score quiz.Score `json:"score"`
}

type ScoresPayload struct {
	Scores map[int64]int `json:"scores"`
}

// KickReason distinguishes why a player stopped receiving events.
type KickReason string

const (
	ReasonHostAction      KickReason = "HostAction"
	ReasonSelf            KickReason = "Self"
	ReasonDisconnected    KickReason = "Disconnected"
	ReasonLostConnection  KickReason = "LostConnection"
	ReasonHostDisconnect  KickReason = "HostDisconnect"
)

type KickedPayload struct {
	ID     int64      `json:"id"`
	Reason KickReason `json:"reason"`
}

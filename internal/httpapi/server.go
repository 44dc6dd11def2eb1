// Package httpapi wires the HTTP surface: quiz upload, image
// retrieval, and the WebSocket socket upgrade that hands a connection
// off to a session.Actor.
package httpapi

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jacobtread/quizler/internal/actor"
	"github.com/jacobtread/quizler/internal/game"
	"github.com/jacobtread/quizler/internal/namefilter"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/jacobtread/quizler/internal/registry"
	"github.com/jacobtread/quizler/internal/session"
	"github.com/jacobtread/quizler/internal/timer"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// staticAssets is a placeholder embedded bundle: the authoring UI and
// client app are out of scope here, but the static-asset route must
// still exist and serve something.
//
//go:embed static
var staticAssets embed.FS

const imageAskTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server owns the engine and registries and exposes the HTTP router.
type Server struct {
	log     zerolog.Logger
	engine  *actor.Engine
	pending *registry.PendingGames
	games   *registry.GameRegistry
	filter  *namefilter.Filter
	timings game.Timings
	nextID  atomic.Int64
}

func NewServer(log zerolog.Logger, engine *actor.Engine, pending *registry.PendingGames, games *registry.GameRegistry) *Server {
	return &Server{
		log:     log,
		engine:  engine,
		pending: pending,
		games:   games,
		filter:  namefilter.New(),
		timings: game.DefaultTimings(),
	}
}

func (s *Server) Router() http.Handler {
	r := httprouter.New()
	r.POST("/api/quiz", s.handleUpload)
	r.GET("/api/quiz/:token/:image", s.handleImage)
	r.GET("/api/quiz/socket", s.handleSocket)

	sub, err := fs.Sub(staticAssets, "static")
	if err == nil {
		fileServer := http.FileServer(http.FS(sub))
		r.NotFound = fileServer
	}
	return r
}

// --- Spawner implementation, used by session.Actor ---

func (s *Server) TakePending(handle string) (*registry.PendingGame, bool) {
	id, err := uuid.Parse(handle)
	if err != nil {
		return nil, false
	}
	return s.pending.Take(id)
}

func (s *Server) CreateGame(cfg quiz.Config, images map[string]registry.Image, hostID int64, hostSession game.SessionRef) (string, *actor.PID, error) {
	return s.games.Create(func(token string) *actor.PID {
		producer := game.NewProducer(game.Config{
			Token:       token,
			Quiz:        cfg,
			Images:      images,
			HostID:      hostID,
			HostSession: hostSession,
			Timings:     s.timings,
			Clock:       timer.Real,
			Filter:      s.filter,
			OnRemove:    func(tok string) { s.games.Remove(tok) },
			Log:         s.log.With().Str("token", token).Logger(),
		})
		return s.engine.Spawn(actor.NewProps(producer))
	})
}

func (s *Server) LookupGame(token string) (*actor.PID, bool) {
	return s.games.Lookup(token)
}

// --- handlers ---

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, images, err := parseUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	handle := s.pending.Put(cfg, images)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"uuid": handle.String()})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pid, found := s.games.Lookup(ps.ByName("token"))
	if !found {
		http.NotFound(w, r)
		return
	}
	reply, err := s.engine.Ask(pid, game.ImageRequest{UUID: ps.ByName("image")}, imageAskTimeout)
	if err != nil {
		http.Error(w, "image lookup timed out", http.StatusGatewayTimeout)
		return
	}
	imgReply, ok := reply.(game.ImageReply)
	if !ok || !imgReply.Found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", imgReply.ContentType)
	_, _ = w.Write(imgReply.Bytes)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := s.nextID.Add(1)
	done := make(chan struct{})
	producer := session.NewProducer(session.Config{
		ID:      id,
		Conn:    conn,
		Spawner: s,
		Log:     s.log,
		Done:    done,
	})
	pid := s.engine.Spawn(actor.NewProps(producer))
	if pid == nil {
		_ = conn.Close()
		return
	}
	<-done
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jacobtread/quizler/internal/actor"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/jacobtread/quizler/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	log := zerolog.Nop()
	engine := actor.NewEngine(log)
	pending := registry.NewPendingGames(log, time.Minute)
	t.Cleanup(pending.Close)
	games := registry.NewGameRegistry(log)

	srv := NewServer(log, engine, pending, games)
	httpSrv := httptest.NewServer(srv.Router())
	t.Cleanup(httpSrv.Close)
	return httpSrv, srv
}

func uploadDemoQuiz(t *testing.T, baseURL string) string {
	t.Helper()
	cfg := quiz.Config{
		Name:       "demo",
		MaxPlayers: 5,
		Filtering:  quiz.FilterNone,
		Questions: []quiz.Question{{
			Kind:           quiz.KindTrueFalse,
			Text:           "is go fun?",
			AnswerTimeMs:   5000,
			BonusScoreTime: 1000,
			Scoring:        quiz.Scoring{MinScore: 10, MaxScore: 100, BonusScore: 20},
			TrueFalse:      &quiz.TrueFalseData{Answer: true},
		}},
	}
	cfgJSON, err := json.Marshal(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("config", string(cfgJSON)))
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/quiz", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["uuid"]
}

func dialSocket(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + "/api/quiz/socket"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestUploadThenInitializeJoinsAsHost(t *testing.T) {
	httpSrv, _ := newTestServer(t)
	handle := uploadDemoQuiz(t, httpSrv.URL)

	conn := dialSocket(t, httpSrv.URL)
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"ty": "Initialize", "rid": 1, "uuid": handle}))

	var resp map[string]interface{}
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "Joined", resp["ty"])
	require.NotEmpty(t, resp["token"])
}

func TestInitializeWithUnknownHandleFails(t *testing.T) {
	httpSrv, _ := newTestServer(t)
	conn := dialSocket(t, httpSrv.URL)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"ty": "Initialize", "rid": 1, "uuid": "00000000-0000-0000-0000-000000000000"}))

	var resp map[string]interface{}
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, "Error", resp["ty"])
	require.Equal(t, "InvalidToken", resp["error"])
}

func TestSecondClientJoinsHostedGame(t *testing.T) {
	httpSrv, _ := newTestServer(t)
	handle := uploadDemoQuiz(t, httpSrv.URL)

	host := dialSocket(t, httpSrv.URL)
	require.NoError(t, host.WriteJSON(map[string]interface{}{"ty": "Initialize", "rid": 1, "uuid": handle}))
	var hostResp map[string]interface{}
	require.NoError(t, host.ReadJSON(&hostResp))
	token := hostResp["token"].(string)

	player := dialSocket(t, httpSrv.URL)
	require.NoError(t, player.WriteJSON(map[string]interface{}{"ty": "Connect", "rid": 1, "token": token}))
	var connectResp map[string]interface{}
	require.NoError(t, player.ReadJSON(&connectResp))
	require.Equal(t, "Ok", connectResp["ty"])

	require.NoError(t, player.WriteJSON(map[string]interface{}{"ty": "Join", "rid": 2, "name": "Alice"}))
	var joinResp map[string]interface{}
	require.NoError(t, player.ReadJSON(&joinResp))
	require.Equal(t, "Joined", joinResp["ty"])
}

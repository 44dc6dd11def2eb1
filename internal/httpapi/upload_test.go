package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMultipart(t *testing.T, cfg quiz.Config, images map[string][]byte) (*http.Request, error) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	cfgJSON, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("config", string(cfgJSON)))

	for name, data := range images {
		part, err := w.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/quiz", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

func questionWithImage(uuid string) quiz.Question {
	return quiz.Question{
		Kind:           quiz.KindTrueFalse,
		Text:           "true or false?",
		Image:          &quiz.ImageRef{UUID: uuid},
		AnswerTimeMs:   5000,
		BonusScoreTime: 1000,
		Scoring:        quiz.Scoring{MinScore: 10, MaxScore: 100, BonusScore: 20},
		TrueFalse:      &quiz.TrueFalseData{Answer: true},
	}
}

func TestParseUploadAllReferencedImagesPresent(t *testing.T) {
	cfg := quiz.Config{Name: "demo", MaxPlayers: 5, Filtering: quiz.FilterNone, Questions: []quiz.Question{questionWithImage("img-1")}}
	req, _ := buildMultipart(t, cfg, map[string][]byte{"img-1": []byte("fake-png-bytes")})

	parsed, images, err := parseUpload(req)
	require.NoError(t, err)
	assert.Equal(t, "demo", parsed.Name)
	require.Contains(t, images, "img-1")
	assert.Equal(t, []byte("fake-png-bytes"), images["img-1"].Bytes)
}

func TestParseUploadMissingImageFails(t *testing.T) {
	cfg := quiz.Config{Name: "demo", MaxPlayers: 5, Filtering: quiz.FilterNone, Questions: []quiz.Question{questionWithImage("img-missing")}}
	req, _ := buildMultipart(t, cfg, map[string][]byte{})

	_, _, err := parseUpload(req)
	assert.Error(t, err)
}

func TestParseUploadUnreferencedImageFails(t *testing.T) {
	cfg := quiz.Config{Name: "demo", MaxPlayers: 5, Filtering: quiz.FilterNone, Questions: []quiz.Question{}}
	req, _ := buildMultipart(t, cfg, map[string][]byte{"extra": []byte("data")})

	_, _, err := parseUpload(req)
	assert.Error(t, err)
}

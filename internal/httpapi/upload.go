package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/jacobtread/quizler/internal/registry"
)

const maxUploadBytes = 64 << 20 // 64MiB, generous for a handful of quiz images

// referencedImageUUIDs collects every image.uuid a question references,
// so the multipart parts can be checked for an exact match: every
// referenced UUID must have a part, and no unreferenced parts.
func referencedImageUUIDs(cfg quiz.Config) map[string]struct{} {
	out := make(map[string]struct{})
	for _, q := range cfg.Questions {
		if q.Image != nil && q.Image.UUID != "" {
			out[q.Image.UUID] = struct{}{}
		}
	}
	return out
}

func parseUpload(r *http.Request) (quiz.Config, map[string]registry.Image, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return quiz.Config{}, nil, fmt.Errorf("invalid multipart upload: %w", err)
	}
	form := r.MultipartForm
	if form == nil {
		return quiz.Config{}, nil, fmt.Errorf("missing multipart form")
	}

	configParts := form.Value["config"]
	if len(configParts) != 1 {
		return quiz.Config{}, nil, fmt.Errorf("expected exactly one config part")
	}
	var cfg quiz.Config
	if err := json.Unmarshal([]byte(configParts[0]), &cfg); err != nil {
		return quiz.Config{}, nil, fmt.Errorf("invalid config json: %w", err)
	}

	wanted := referencedImageUUIDs(cfg)
	images := make(map[string]registry.Image, len(wanted))

	for name, headers := range form.File {
		if _, isReferenced := wanted[name]; !isReferenced {
			return quiz.Config{}, nil, fmt.Errorf("unreferenced image part %q", name)
		}
		if len(headers) != 1 {
			return quiz.Config{}, nil, fmt.Errorf("expected exactly one file for part %q", name)
		}
		img, err := readImagePart(headers[0])
		if err != nil {
			return quiz.Config{}, nil, err
		}
		images[name] = img
	}

	for uuid := range wanted {
		if _, ok := images[uuid]; !ok {
			return quiz.Config{}, nil, fmt.Errorf("missing image part for referenced uuid %q", uuid)
		}
	}

	return cfg, images, nil
}

func readImagePart(header *multipart.FileHeader) (registry.Image, error) {
	file, err := header.Open()
	if err != nil {
		return registry.Image{}, fmt.Errorf("opening image part %q: %w", header.Filename, err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return registry.Image{}, fmt.Errorf("reading image part %q: %w", header.Filename, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return registry.Image{Bytes: bytes, ContentType: contentType}, nil
}

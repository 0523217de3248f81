package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/luminalearn/lumina-backend/internal/types"
)

type fakeMediaStore struct {
	savedKey  string
	savedData []byte
}

func (f *fakeMediaStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	f.savedKey = key
	f.savedData = data
	return "/media/" + key, nil
}

func TestGenerate_VisualProducesImageURL(t *testing.T) {
	gen := NewOpenAIContentGenerator(newTestLogger(t), &fakeAIClient{}, &fakeMediaStore{})

	payload, err := gen.Generate(context.Background(), types.StyleVisual, testLesson(1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if payload.ContentType != types.ContentTypeImage {
		t.Fatalf("expected image, got %q", payload.ContentType)
	}
	var data map[string]string
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["url"] == "" {
		t.Fatalf("expected a hosted url, got %v", data)
	}
}

func TestGenerate_AuditorySavesAudioAndKeepsTranscript(t *testing.T) {
	media := &fakeMediaStore{}
	ai := &fakeAIClient{chatReply: "An engaging script about cells."}
	gen := NewOpenAIContentGenerator(newTestLogger(t), ai, media)

	payload, err := gen.Generate(context.Background(), types.StyleAuditory, testLesson(1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if payload.ContentType != types.ContentTypeAudio {
		t.Fatalf("expected audio, got %q", payload.ContentType)
	}
	if !strings.HasSuffix(media.savedKey, ".mp3") {
		t.Fatalf("expected an mp3 key, got %q", media.savedKey)
	}
	var data map[string]string
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["url"] != "/media/"+media.savedKey {
		t.Fatalf("url should point at the saved media, got %q", data["url"])
	}
	if data["transcript"] != "An engaging script about cells." {
		t.Fatalf("transcript lost: %q", data["transcript"])
	}
}

func TestGenerate_ReadingFallsBackToText(t *testing.T) {
	ai := &fakeAIClient{chatReply: "A clearer rewrite."}
	gen := NewOpenAIContentGenerator(newTestLogger(t), ai, &fakeMediaStore{})

	payload, err := gen.Generate(context.Background(), types.StyleReading, testLesson(1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if payload.ContentType != types.ContentTypeText {
		t.Fatalf("expected text, got %q", payload.ContentType)
	}
	var data map[string]string
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["text"] != "A clearer rewrite." {
		t.Fatalf("unexpected text %q", data["text"])
	}
}

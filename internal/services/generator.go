package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// GeneratedPayload is what a generation collaborator hands back for one
// (lesson, style) request. QuizData is nil when the generator produced none,
// and must stay nil through storage.
type GeneratedPayload struct {
	ContentType string
	Data        datatypes.JSON
	QuizData    datatypes.JSON
}

// ContentGenerator produces style-adapted content for a lesson. Implementations
// are expected to be expensive; the orchestrator only calls one on a cache miss.
type ContentGenerator interface {
	Generate(ctx context.Context, style string, lesson *types.Lesson) (*GeneratedPayload, error)
}

type openAIContentGenerator struct {
	log   *logger.Logger
	ai    OpenAIClient
	media MediaStore
}

func NewOpenAIContentGenerator(baseLog *logger.Logger, ai OpenAIClient, media MediaStore) ContentGenerator {
	return &openAIContentGenerator{
		log:   baseLog.With("service", "OpenAIContentGenerator"),
		ai:    ai,
		media: media,
	}
}

func (g *openAIContentGenerator) Generate(ctx context.Context, style string, lesson *types.Lesson) (*GeneratedPayload, error) {
	switch style {
	case types.StyleVisual:
		return g.generateImage(ctx, lesson)
	case types.StyleAuditory:
		return g.generateAudio(ctx, lesson)
	default:
		return g.generateText(ctx, lesson)
	}
}

func (g *openAIContentGenerator) generateImage(ctx context.Context, lesson *types.Lesson) (*GeneratedPayload, error) {
	prompt := fmt.Sprintf("Based on the following text, create a simple, clear educational infographic. Text: '%s'", lesson.OriginalText)
	url, err := g.ai.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	data, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return nil, err
	}
	return &GeneratedPayload{ContentType: types.ContentTypeImage, Data: data}, nil
}

func (g *openAIContentGenerator) generateAudio(ctx context.Context, lesson *types.Lesson) (*GeneratedPayload, error) {
	prompt := fmt.Sprintf("Based on the following text, create a short, engaging audio script. Text: '%s'", lesson.OriginalText)
	script, err := g.chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate audio script: %w", err)
	}
	audio, err := g.ai.Speech(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("synthesize audio: %w", err)
	}
	key := uuid.New().String() + ".mp3"
	url, err := g.media.Save(ctx, key, audio)
	if err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}
	data, err := json.Marshal(map[string]string{"url": url, "transcript": script})
	if err != nil {
		return nil, err
	}
	return &GeneratedPayload{ContentType: types.ContentTypeAudio, Data: data}, nil
}

func (g *openAIContentGenerator) generateText(ctx context.Context, lesson *types.Lesson) (*GeneratedPayload, error) {
	prompt := fmt.Sprintf("Rewrite the following text in a clear, well-structured format. Text: '%s'", lesson.OriginalText)
	text, err := g.chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}
	data, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	return &GeneratedPayload{ContentType: types.ContentTypeText, Data: data}, nil
}

func (g *openAIContentGenerator) chat(ctx context.Context, prompt string) (string, error) {
	return g.ai.Chat(ctx, []types.DialogueTurn{
		{Role: "system", Content: "You are a helpful AI assistant."},
		{Role: types.RoleUser, Content: prompt},
	})
}

package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
	"github.com/luminalearn/lumina-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeLessonRepo struct {
	lessons map[uint]*types.Lesson
	getErr  error
}

func (f *fakeLessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	if f.lessons == nil {
		f.lessons = map[uint]*types.Lesson{}
	}
	lesson.ID = uint(len(f.lessons) + 1)
	f.lessons[lesson.ID] = lesson
	return lesson, nil
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uint) (*types.Lesson, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lessons[lessonID], nil
}

func (f *fakeLessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, id := range lessonIDs {
		if l, ok := f.lessons[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	delete(f.lessons, lessonID)
	return nil
}

type contentKey struct {
	lessonID uint
	style    string
}

type fakeContentRepo struct {
	rows    map[contentKey]*types.GeneratedContent
	putErr  error
	getErr  error
	putSeen int
	// missOnGet makes lookups miss while Put still sees existing rows,
	// simulating a writer that lands between the two.
	missOnGet bool
}

func (f *fakeContentRepo) Get(ctx context.Context, tx *gorm.DB, lessonID uint, style string) (*types.GeneratedContent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.missOnGet {
		return nil, nil
	}
	return f.rows[contentKey{lessonID, style}], nil
}

func (f *fakeContentRepo) Put(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) (repos.PutOutcome, error) {
	f.putSeen++
	if f.putErr != nil {
		return repos.PutStored, f.putErr
	}
	if f.rows == nil {
		f.rows = map[contentKey]*types.GeneratedContent{}
	}
	key := contentKey{content.LessonID, content.Style}
	if _, exists := f.rows[key]; exists {
		return repos.PutDuplicate, nil
	}
	f.rows[key] = content
	return repos.PutStored, nil
}

type fakeDialogueRepo struct {
	appended   []*types.SocraticDialogue
	aggregates []repos.StyleAggregate
	appendErr  error
	aggErr     error
}

func (f *fakeDialogueRepo) Append(ctx context.Context, tx *gorm.DB, dialogue *types.SocraticDialogue) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, dialogue)
	return nil
}

func (f *fakeDialogueRepo) AggregateStylesByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) ([]repos.StyleAggregate, error) {
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	return f.aggregates, nil
}

type fakeGenerator struct {
	payload *GeneratedPayload
	err     error
	calls   int
}

func (f *fakeGenerator) Generate(ctx context.Context, style string, lesson *types.Lesson) (*GeneratedPayload, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fakeAIClient struct {
	chatReply  string
	chatErr    error
	chatInputs [][]types.DialogueTurn
}

func (f *fakeAIClient) Chat(ctx context.Context, messages []types.DialogueTurn) (string, error) {
	f.chatInputs = append(f.chatInputs, messages)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatReply, nil
}

func (f *fakeAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "https://example.com/generated.png", nil
}

func (f *fakeAIClient) Speech(ctx context.Context, input string) ([]byte, error) {
	return []byte("mp3"), nil
}

func (f *fakeAIClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

var errBoom = errors.New("boom")

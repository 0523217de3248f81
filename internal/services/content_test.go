package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/luminalearn/lumina-backend/internal/types"
)

func testLesson(id uint) *types.Lesson {
	return &types.Lesson{
		ID:           id,
		LessonTitle:  "What is a Cell?",
		CourseID:     1,
		OriginalText: "Cells are the basic unit of life.",
	}
}

func TestGetOrGenerate_CacheHitSkipsGenerator(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	contentRepo := &fakeContentRepo{rows: map[contentKey]*types.GeneratedContent{
		{1, types.StyleVisual}: {
			LessonID:    1,
			Style:       types.StyleVisual,
			ContentType: types.ContentTypeImage,
			Data:        datatypes.JSON(`{"url":"https://example.com/cached.png"}`),
		},
	}}
	gen := &fakeGenerator{}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, lessonRepo, gen, nil)

	out, err := svc.GetOrGenerate(context.Background(), 1, types.StyleVisual)
	if err != nil {
		t.Fatalf("get-or-generate: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("cache hit must not invoke the generator, got %d calls", gen.calls)
	}
	if out.ContentType != types.ContentTypeImage {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
	if string(out.Data) != `{"url":"https://example.com/cached.png"}` {
		t.Fatalf("unexpected data %s", out.Data)
	}
	if out.LessonTitle != "What is a Cell?" {
		t.Fatalf("unexpected title %q", out.LessonTitle)
	}
}

func TestGetOrGenerate_CacheHitForDeletedLessonUsesPlaceholderTitle(t *testing.T) {
	contentRepo := &fakeContentRepo{rows: map[contentKey]*types.GeneratedContent{
		{9, types.StyleReading}: {
			LessonID:    9,
			Style:       types.StyleReading,
			ContentType: types.ContentTypeText,
			Data:        datatypes.JSON(`{"text":"orphaned"}`),
		},
	}}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, &fakeLessonRepo{}, &fakeGenerator{}, nil)

	out, err := svc.GetOrGenerate(context.Background(), 9, types.StyleReading)
	if err != nil {
		t.Fatalf("get-or-generate: %v", err)
	}
	if out.LessonTitle != "Unknown Topic" {
		t.Fatalf("expected placeholder title, got %q", out.LessonTitle)
	}
}

func TestGetOrGenerate_MissGeneratesAndStores(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	contentRepo := &fakeContentRepo{}
	gen := &fakeGenerator{payload: &GeneratedPayload{
		ContentType: types.ContentTypeText,
		Data:        datatypes.JSON(`{"text":"rewritten"}`),
		QuizData:    datatypes.JSON(`{"questions":[]}`),
	}}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, lessonRepo, gen, nil)

	out, err := svc.GetOrGenerate(context.Background(), 1, types.StyleReading)
	if err != nil {
		t.Fatalf("get-or-generate: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one generator call, got %d", gen.calls)
	}
	stored := contentRepo.rows[contentKey{1, types.StyleReading}]
	if stored == nil {
		t.Fatalf("generated payload was not stored")
	}
	if string(stored.Data) != `{"text":"rewritten"}` {
		t.Fatalf("stored data mutated: %s", stored.Data)
	}
	if string(out.QuizData) != `{"questions":[]}` {
		t.Fatalf("quiz data missing from response: %s", out.QuizData)
	}
}

func TestGetOrGenerate_MissingLessonIsNotFound(t *testing.T) {
	svc := NewContentService(nil, newTestLogger(t), &fakeContentRepo{}, &fakeLessonRepo{}, &fakeGenerator{}, nil)

	_, err := svc.GetOrGenerate(context.Background(), 404, types.StyleVisual)
	if !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestGetOrGenerate_GeneratorFailurePropagatesAndCachesNothing(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	contentRepo := &fakeContentRepo{}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, lessonRepo, &fakeGenerator{err: errBoom}, nil)

	_, err := svc.GetOrGenerate(context.Background(), 1, types.StyleVisual)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if contentRepo.putSeen != 0 {
		t.Fatalf("failed generation must not be cached")
	}
}

func TestGetOrGenerate_LosingDuplicateStillReturnsOwnPayload(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	// A concurrent writer already stored this key; the lookup misses anyway,
	// as happens when the other insert lands after this caller's read.
	contentRepo := &fakeContentRepo{
		missOnGet: true,
		rows: map[contentKey]*types.GeneratedContent{
			{1, types.StyleReading}: {
				LessonID:    1,
				Style:       types.StyleReading,
				ContentType: types.ContentTypeText,
				Data:        datatypes.JSON(`{"text":"theirs"}`),
			},
		},
	}
	gen := &fakeGenerator{payload: &GeneratedPayload{
		ContentType: types.ContentTypeText,
		Data:        datatypes.JSON(`{"text":"mine"}`),
	}}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, lessonRepo, gen, nil)

	out, err := svc.GetOrGenerate(context.Background(), 1, types.StyleReading)
	if err != nil {
		t.Fatalf("a dropped duplicate insert must not surface as an error: %v", err)
	}
	if string(out.Data) != `{"text":"mine"}` {
		t.Fatalf("caller should get its own payload, got %s", out.Data)
	}
	if string(contentRepo.rows[contentKey{1, types.StyleReading}].Data) != `{"text":"theirs"}` {
		t.Fatalf("stored row must stay authoritative")
	}
}

func TestPregenerate_WarmsEveryStyle(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	contentRepo := &fakeContentRepo{}
	gen := &fakeGenerator{payload: &GeneratedPayload{
		ContentType: types.ContentTypeText,
		Data:        datatypes.JSON(`{"text":"x"}`),
	}}
	svc := NewContentService(nil, newTestLogger(t), contentRepo, lessonRepo, gen, nil)

	if err := svc.Pregenerate(context.Background(), 1); err != nil {
		t.Fatalf("pregenerate: %v", err)
	}
	for _, style := range []string{types.StyleVisual, types.StyleAuditory, types.StyleReading} {
		if contentRepo.rows[contentKey{1, style}] == nil {
			t.Fatalf("style %q was not warmed", style)
		}
	}
}

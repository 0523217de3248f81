package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/luminalearn/lumina-backend/internal/types"
)

func TestParseGrade(t *testing.T) {
	cases := []struct {
		reply     string
		score     int
		defaulted bool
	}{
		{"4", 4, false},
		{" 5 \n", 5, false},
		{"1", 1, false},
		{"0", 0, true},
		{"6", 0, true},
		{"-2", 0, true},
		{"four", 0, true},
		{"The student scored 4 out of 5.", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got := parseGrade(tc.reply)
		if got.Score != tc.score || got.Defaulted != tc.defaulted {
			t.Fatalf("parseGrade(%q) = %+v, want score=%d defaulted=%v", tc.reply, got, tc.score, tc.defaulted)
		}
	}
}

func TestChat_BuildsSystemPromptFromLesson(t *testing.T) {
	lessonRepo := &fakeLessonRepo{lessons: map[uint]*types.Lesson{1: testLesson(1)}}
	ai := &fakeAIClient{chatReply: "What do you think a cell does?"}
	svc := NewSocraticService(nil, newTestLogger(t), lessonRepo, &fakeDialogueRepo{}, ai)

	reply, err := svc.Chat(context.Background(), 1, []types.DialogueTurn{
		{Role: types.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "What do you think a cell does?" {
		t.Fatalf("unexpected reply %q", reply)
	}

	sent := ai.chatInputs[0]
	if len(sent) != 2 {
		t.Fatalf("expected system prompt plus history, got %d messages", len(sent))
	}
	if sent[0].Role != "system" || !strings.Contains(sent[0].Content, "What is a Cell?") {
		t.Fatalf("system prompt missing lesson title: %q", sent[0].Content)
	}
	if !strings.Contains(sent[0].Content, "Cells are the basic unit of life.") {
		t.Fatalf("system prompt missing lesson text")
	}
}

func TestChat_MissingLessonIsNotFound(t *testing.T) {
	svc := NewSocraticService(nil, newTestLogger(t), &fakeLessonRepo{}, &fakeDialogueRepo{}, &fakeAIClient{})

	_, err := svc.Chat(context.Background(), 404, nil)
	if !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestGrade_AppendsRecordWithParsedScore(t *testing.T) {
	dialogueRepo := &fakeDialogueRepo{}
	ai := &fakeAIClient{chatReply: "4"}
	svc := NewSocraticService(nil, newTestLogger(t), &fakeLessonRepo{}, dialogueRepo, ai)

	history := []types.DialogueTurn{
		{Role: types.RoleAssistant, Content: "What was the main idea?"},
		{Role: types.RoleUser, Content: "Cells are the unit of life."},
	}
	result, err := svc.Grade(context.Background(), 1, "session-1", types.StyleVisual, history)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 4 || result.Defaulted {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(dialogueRepo.appended) != 1 {
		t.Fatalf("expected one appended record, got %d", len(dialogueRepo.appended))
	}
	rec := dialogueRepo.appended[0]
	if rec.LessonID != 1 || rec.SessionID != "session-1" || rec.Style != types.StyleVisual {
		t.Fatalf("record keys wrong: %+v", rec)
	}
	if rec.UnderstandingScore == nil || *rec.UnderstandingScore != 4 {
		t.Fatalf("record score wrong: %+v", rec.UnderstandingScore)
	}
	if !strings.Contains(string(rec.ConversationHistory), "Cells are the unit of life.") {
		t.Fatalf("history not persisted: %s", rec.ConversationHistory)
	}
}

func TestGrade_UnparsableReplyRecordsZero(t *testing.T) {
	dialogueRepo := &fakeDialogueRepo{}
	ai := &fakeAIClient{chatReply: "I would rate this a solid 4."}
	svc := NewSocraticService(nil, newTestLogger(t), &fakeLessonRepo{}, dialogueRepo, ai)

	result, err := svc.Grade(context.Background(), 1, "session-1", types.StyleAuditory, nil)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if result.Score != 0 || !result.Defaulted {
		t.Fatalf("expected defaulted zero, got %+v", result)
	}
	if len(dialogueRepo.appended) != 1 {
		t.Fatalf("defaulted grade must still append, got %d records", len(dialogueRepo.appended))
	}
	if *dialogueRepo.appended[0].UnderstandingScore != 0 {
		t.Fatalf("expected stored score 0")
	}
}

func TestGrade_BlankSessionIDGetsGenerated(t *testing.T) {
	dialogueRepo := &fakeDialogueRepo{}
	svc := NewSocraticService(nil, newTestLogger(t), &fakeLessonRepo{}, dialogueRepo, &fakeAIClient{chatReply: "3"})

	if _, err := svc.Grade(context.Background(), 1, "  ", types.StyleVisual, nil); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if strings.TrimSpace(dialogueRepo.appended[0].SessionID) == "" {
		t.Fatalf("expected a generated session id")
	}
}

func TestGrade_GraderTransportErrorPropagatesWithoutRecord(t *testing.T) {
	dialogueRepo := &fakeDialogueRepo{}
	svc := NewSocraticService(nil, newTestLogger(t), &fakeLessonRepo{}, dialogueRepo, &fakeAIClient{chatErr: errBoom})

	if _, err := svc.Grade(context.Background(), 1, "s", types.StyleVisual, nil); !errors.Is(err, errBoom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(dialogueRepo.appended) != 0 {
		t.Fatalf("transport failure must not append a record")
	}
}

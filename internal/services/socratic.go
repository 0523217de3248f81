package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// GradeResult distinguishes a real grade from the sentinel written when the
// grader output could not be parsed. Defaulted grades still append a record;
// their zero score keeps that sample from ever lifting a style past the
// recommendation threshold.
type GradeResult struct {
	Score     int  `json:"final_score"`
	Defaulted bool `json:"-"`
}

type SocraticService interface {
	// Chat produces the tutor's next guiding question for the conversation.
	Chat(ctx context.Context, lessonID uint, history []types.DialogueTurn) (string, error)
	// Grade scores the conversation 1-5 and appends the dialogue record. A
	// grader reply that is not a number in range scores 0 and is still recorded.
	Grade(ctx context.Context, lessonID uint, sessionID, style string, history []types.DialogueTurn) (GradeResult, error)
}

type socraticService struct {
	db           *gorm.DB
	log          *logger.Logger
	lessonRepo   repos.LessonRepo
	dialogueRepo repos.SocraticDialogueRepo
	ai           OpenAIClient
}

func NewSocraticService(
	db *gorm.DB,
	baseLog *logger.Logger,
	lessonRepo repos.LessonRepo,
	dialogueRepo repos.SocraticDialogueRepo,
	ai OpenAIClient,
) SocraticService {
	return &socraticService{
		db:           db,
		log:          baseLog.With("service", "SocraticService"),
		lessonRepo:   lessonRepo,
		dialogueRepo: dialogueRepo,
		ai:           ai,
	}
}

func (s *socraticService) Chat(ctx context.Context, lessonID uint, history []types.DialogueTurn) (string, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return "", fmt.Errorf("load lesson: %w", err)
	}
	if lesson == nil {
		return "", ErrLessonNotFound
	}

	systemPrompt := fmt.Sprintf(`You are a Socratic Tutor helping a student understand '%s'.
The lesson text is: "%s"
Your rules: NEVER give direct answers. ALWAYS ask short, open-ended questions to guide the student.
Start the conversation with a broad opening question.`, lesson.LessonTitle, lesson.OriginalText)

	messages := make([]types.DialogueTurn, 0, len(history)+1)
	messages = append(messages, types.DialogueTurn{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	reply, err := s.ai.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("tutor completion: %w", err)
	}
	return reply, nil
}

func (s *socraticService) Grade(ctx context.Context, lessonID uint, sessionID, style string, history []types.DialogueTurn) (GradeResult, error) {
	encodedHistory, err := json.Marshal(history)
	if err != nil {
		return GradeResult{}, fmt.Errorf("encode conversation: %w", err)
	}

	graderPrompt := fmt.Sprintf(`Based on the following conversation, rate the student's understanding on a scale of 1 to 5.
Respond ONLY with a single number.
Conversation: %s`, string(encodedHistory))

	reply, err := s.ai.Chat(ctx, []types.DialogueTurn{
		{Role: "system", Content: "You are a helpful AI assistant."},
		{Role: types.RoleUser, Content: graderPrompt},
	})
	if err != nil {
		return GradeResult{}, fmt.Errorf("grader completion: %w", err)
	}

	result := parseGrade(reply)
	if result.Defaulted {
		s.log.Warn("Grader reply was not a score, recording 0",
			"lesson_id", lessonID, "style", style, "reply", reply)
	}

	if strings.TrimSpace(sessionID) == "" {
		sessionID = uuid.New().String()
	}
	score := result.Score
	record := &types.SocraticDialogue{
		LessonID:            lessonID,
		SessionID:           sessionID,
		Style:               style,
		ConversationHistory: encodedHistory,
		UnderstandingScore:  &score,
	}
	if err := s.dialogueRepo.Append(ctx, nil, record); err != nil {
		return GradeResult{}, fmt.Errorf("append dialogue record: %w", err)
	}
	return result, nil
}

// parseGrade accepts a bare integer 1-5 with surrounding whitespace. Anything
// else defaults to the zero sentinel.
func parseGrade(reply string) GradeResult {
	score, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil || score < 1 || score > 5 {
		return GradeResult{Score: 0, Defaulted: true}
	}
	return GradeResult{Score: score}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/luminalearn/lumina-backend/internal/app"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// Seeds the dialogue log with simulated student sessions so the style
// recommendation endpoint has data to aggregate. Each lesson has a designated
// best style; sessions using it score 4-5, everything else scores 1-3.
func main() {
	var students int
	var keep bool
	flag.IntVar(&students, "students", 100, "number of virtual students to simulate")
	flag.BoolVar(&keep, "keep", false, "keep existing dialogue records instead of clearing them")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()

	if !keep {
		if err := application.DB.WithContext(ctx).Exec("DELETE FROM socratic_dialogue").Error; err != nil {
			fmt.Printf("clear dialogue log: %v\n", err)
			os.Exit(1)
		}
	}

	lessonIDs := []uint{1, 2, 3}
	styles := []string{types.StyleVisual, types.StyleAuditory, types.StyleReading}
	optimalStyles := map[uint]string{
		1: types.StyleVisual,
		2: types.StyleReading,
		3: types.StyleAuditory,
	}

	inserted := 0
	for i := 0; i < students; i++ {
		sessionID := fmt.Sprintf("simulated_session_%d", i)
		for _, lessonID := range lessonIDs {
			chosenStyle := styles[rand.Intn(len(styles))]

			var score int
			if chosenStyle == optimalStyles[lessonID] {
				score = 4 + rand.Intn(2)
			} else {
				score = 1 + rand.Intn(3)
			}

			history, err := json.Marshal([]types.DialogueTurn{
				{Role: types.RoleAssistant, Content: "What was the main idea?"},
				{Role: types.RoleUser, Content: fmt.Sprintf("A simulated answer for style %s.", chosenStyle)},
			})
			if err != nil {
				fmt.Printf("marshal history: %v\n", err)
				os.Exit(1)
			}

			record := &types.SocraticDialogue{
				LessonID:            lessonID,
				SessionID:           sessionID,
				Style:               chosenStyle,
				ConversationHistory: history,
				UnderstandingScore:  &score,
			}
			if err := application.Repos.SocraticDialogue.Append(ctx, nil, record); err != nil {
				fmt.Printf("insert dialogue for lesson %d: %v\n", lessonID, err)
				os.Exit(1)
			}
			inserted++
		}
	}

	fmt.Printf("Successfully simulated data for %d virtual students (%d records).\n", students, inserted)
}

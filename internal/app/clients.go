package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/luminalearn/lumina-backend/internal/clients/pinecone"
	goredis "github.com/luminalearn/lumina-backend/internal/clients/redis"
	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type Clients struct {
	OpenAI       services.OpenAIClient
	VectorStore  pinecone.VectorStore
	ContentCache goredis.ContentCache
}

// wireClients builds the external collaborators. OpenAI is required; the
// vector index and redis read cache are optional and degrade to nil.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	var vectorStore pinecone.VectorStore
	if strings.TrimSpace(os.Getenv("PINECONE_API_KEY")) != "" {
		pc, err := pinecone.New(log, pinecone.Config{
			APIKey:  os.Getenv("PINECONE_API_KEY"),
			Timeout: 30 * time.Second,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init pinecone client: %w", err)
		}
		vectorStore, err = pinecone.NewVectorStore(log, pc)
		if err != nil {
			return Clients{}, fmt.Errorf("init pinecone vector store: %w", err)
		}
	} else {
		log.Warn("PINECONE_API_KEY not set, similar-lesson search disabled")
	}

	var contentCache goredis.ContentCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		contentCache, err = goredis.NewContentCache(log)
		if err != nil {
			// The database is authoritative; run without the read cache.
			log.Warn("Redis content cache init failed, continuing without it", "error", err)
			contentCache = nil
		}
	} else {
		log.Debug("REDIS_ADDR not set, content read cache disabled")
	}

	return Clients{
		OpenAI:       openaiClient,
		VectorStore:  vectorStore,
		ContentCache: contentCache,
	}, nil
}

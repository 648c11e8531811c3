package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the service reads from the environment.
// It is constructed once at startup and threaded through components; nothing
// below main reads the environment directly.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	OpenAI    OpenAIConfig
	Memory    MemoryConfig
	Speech    SpeechConfig
	Retrieval RetrievalConfig
}

// Load parses the full configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	retrieval, err := loadRetrievalConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Database:  loadDatabaseConfig(),
		OpenAI:    loadOpenAIConfig(),
		Memory:    loadMemoryConfig(),
		Speech:    loadSpeechConfig(),
		Retrieval: retrieval,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// DatabaseConfig describes the Postgres connection carrying the document
// vectors, prompt settings, and conversation logs.
type DatabaseConfig struct {
	URL string
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{URL: strings.TrimSpace(os.Getenv("DATABASE_URL"))}
}

// OpenAIConfig describes the hosted model used for embeddings, chat
// completions, and transcription.
type OpenAIConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
}

// Enabled reports whether the hosted model credentials are present.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		ChatModel:      getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnvOrDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-ada-002"),
	}
}

// MemoryConfig describes the hosted long-term memory service.
type MemoryConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled reports whether memory writes should be attempted at all.
func (c MemoryConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadMemoryConfig() MemoryConfig {
	return MemoryConfig{
		APIKey:  strings.TrimSpace(os.Getenv("MEM0_API_KEY")),
		BaseURL: getEnvOrDefault("MEM0_BASE_URL", "https://api.mem0.ai"),
	}
}

// SpeechConfig describes the hosted text-to-speech service. Credentials are
// server-held only; no client ever sees them.
type SpeechConfig struct {
	ElevenLabsAPIKey string
	VoiceID          string
	ModelID          string
	BaseURL          string
}

// Enabled reports whether synthesis credentials are present.
func (c SpeechConfig) Enabled() bool {
	return c.ElevenLabsAPIKey != ""
}

func loadSpeechConfig() SpeechConfig {
	return SpeechConfig{
		ElevenLabsAPIKey: strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		VoiceID:          getEnvOrDefault("ELEVENLABS_VOICE_ID", "JBFqnCBsd6RMkjVDRZzb"),
		ModelID:          getEnvOrDefault("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		BaseURL:          getEnvOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
	}
}

// RetrievalConfig bounds the similarity search feeding prompt assembly.
type RetrievalConfig struct {
	// Threshold is the minimum cosine similarity a snippet must clear.
	Threshold float64
	// TopK caps the number of snippets injected into the prompt.
	TopK int
}

func loadRetrievalConfig() (RetrievalConfig, error) {
	threshold := 0.7
	if override, err := parseOptionalFloatEnv("RETRIEVAL_THRESHOLD"); err != nil {
		return RetrievalConfig{}, err
	} else if override != nil {
		if *override <= 0 || *override > 1 {
			return RetrievalConfig{}, fmt.Errorf("RETRIEVAL_THRESHOLD must be in (0,1], got %v", *override)
		}
		threshold = *override
	}

	topK := 5
	if override, err := parseOptionalIntEnv("RETRIEVAL_TOP_K"); err != nil {
		return RetrievalConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return RetrievalConfig{}, fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", *override)
		}
		topK = *override
	}

	return RetrievalConfig{Threshold: threshold, TopK: topK}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

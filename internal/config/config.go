// Package config builds the runtime configuration from the environment.
// Everything is loaded once at process start and passed into components;
// nothing reads the environment after that.
package config

import (
	"fmt"
	"os"
)

// Config holds credentials, destination property names, and the raw genre
// mapping table for one run.
type Config struct {
	NotionToken string
	DatabaseID  string

	TitleProp     string
	AuthorProp    string
	PublisherProp string
	PagesProp     string
	GenreProp     string
	StatusProp    string
	KyoboURLProp  string
	RequestProp   string
	ReadPagesProp string

	// GenreMapJSON is the raw JSON object mapping comma-separated keyword
	// lists to destination genre values. Rule order is the object's key
	// order, so it is kept as text until the mapper parses it.
	GenreMapJSON string

	// Optional Gemini fallback for genre classification.
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the configuration from the environment. A missing token or
// database id is a fatal configuration error: nothing can run without them.
func Load() (*Config, error) {
	cfg := &Config{
		NotionToken:   os.Getenv("NOTION_TOKEN"),
		DatabaseID:    os.Getenv("DATABASE_ID"),
		TitleProp:     getenvDefault("TITLE_PROP", "책 제목"),
		AuthorProp:    getenvDefault("AUTHOR_PROP", "저자"),
		PublisherProp: getenvDefault("PUBLISHER_PROP", "출판사"),
		PagesProp:     getenvDefault("PAGES_PROP", "페이지"),
		GenreProp:     getenvDefault("GENRE_PROP", "장르"),
		StatusProp:    getenvDefault("STATUS_PROP", "상태"),
		KyoboURLProp:  getenvDefault("KY_URL_PROP", "교보 URL"),
		RequestProp:   getenvDefault("REQUEST_PROP", "수집요청"),
		ReadPagesProp: getenvDefault("READ_PAGES_PROP", "읽은 페이지"),
		GenreMapJSON:  getenvDefault("GENRE_MAP_JSON", "{}"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if cfg.NotionToken == "" || cfg.DatabaseID == "" {
		return nil, fmt.Errorf("NOTION_TOKEN / DATABASE_ID must be set")
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

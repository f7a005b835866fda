// Package dictionary wraps the free dictionaryapi.dev lookup API behind a
// typed client with an optional Redis cache in front of it.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"wordvault/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrWordNotFound indicates the upstream dictionary has no entry for the word
var ErrWordNotFound = errors.New("word not found")

const (
	requestTimeout = 10 * time.Second
	cachePrefix    = "dictionary:"
)

// Cache stores raw upstream responses keyed by (language, word).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// RedisCache is the Redis-backed Cache used in production. Failures degrade
// to cache misses; a lookup never fails because Redis is down.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("dictionary cache read failed: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, cachePrefix+key, value, ttl).Err(); err != nil {
		log.Printf("dictionary cache write failed: %v", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, cachePrefix+key).Err(); err != nil {
		log.Printf("dictionary cache delete failed: %v", err)
	}
}

// entry mirrors the upstream response shape.
type entry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example"`
			Synonyms   []string `json:"synonyms"`
			Antonyms   []string `json:"antonyms"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
		Antonyms []string `json:"antonyms"`
	} `json:"meanings"`
}

// Service looks up words against the upstream API. A nil cache disables
// caching entirely.
type Service struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
}

// NewService creates a dictionary service. cache may be nil.
func NewService(baseURL string, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func cacheKey(language, word string) string {
	return fmt.Sprintf("%s:%s", language, word)
}

// fetch returns the raw upstream entries for a word, consulting the cache
// first. Only successful responses are cached.
func (s *Service) fetch(ctx context.Context, language, word string) ([]entry, error) {
	key := cacheKey(language, word)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var entries []entry
			if err := json.Unmarshal(data, &entries); err == nil {
				return entries, nil
			}
			// Unreadable cache entry, fall through to the upstream.
			s.cache.Delete(ctx, key)
		}
	}

	reqURL := fmt.Sprintf("%s/%s/%s", s.baseURL, language, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrWordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary response: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrWordNotFound
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, body, s.cacheTTL)
	}
	return entries, nil
}

// Search returns the complete flattened result for a word.
func (s *Service) Search(ctx context.Context, language, word string) (*models.WordResult, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return nil, err
	}

	first := entries[0]
	return &models.WordResult{
		Word:          first.Word,
		Language:      language,
		Pronunciation: pronunciation(first),
		Phonetic:      first.Phonetic,
		Definitions:   definitions(first),
		Synonyms:      synonyms(first),
		Antonyms:      antonyms(first),
		Examples:      examples(first),
	}, nil
}

// Definitions returns every sense of the word across all parts of speech.
func (s *Service) Definitions(ctx context.Context, language, word string) ([]models.Definition, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return nil, err
	}
	return definitions(entries[0]), nil
}

// Synonyms returns the deduplicated synonyms of the word.
func (s *Service) Synonyms(ctx context.Context, language, word string) ([]string, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return nil, err
	}
	return synonyms(entries[0]), nil
}

// Antonyms returns the deduplicated antonyms of the word.
func (s *Service) Antonyms(ctx context.Context, language, word string) ([]string, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return nil, err
	}
	return antonyms(entries[0]), nil
}

// Examples returns every usage example paired with its part of speech.
func (s *Service) Examples(ctx context.Context, language, word string) ([]models.Example, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return nil, err
	}
	return examples(entries[0]), nil
}

// Pronunciation returns the first audio pronunciation URL, or empty when
// the upstream has none.
func (s *Service) Pronunciation(ctx context.Context, language, word string) (string, error) {
	entries, err := s.fetch(ctx, language, word)
	if err != nil {
		return "", err
	}
	return pronunciation(entries[0]), nil
}

// ClearCache drops the cached upstream response for a word.
func (s *Service) ClearCache(ctx context.Context, language, word string) {
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKey(language, word))
	}
}

func pronunciation(e entry) string {
	for _, p := range e.Phonetics {
		if p.Audio != "" {
			return p.Audio
		}
	}
	return ""
}

func definitions(e entry) []models.Definition {
	defs := []models.Definition{}
	for _, meaning := range e.Meanings {
		partOfSpeech := meaning.PartOfSpeech
		if partOfSpeech == "" {
			partOfSpeech = "unknown"
		}
		for _, d := range meaning.Definitions {
			defs = append(defs, models.Definition{
				Definition:   d.Definition,
				PartOfSpeech: partOfSpeech,
				Example:      d.Example,
			})
		}
	}
	return defs
}

func synonyms(e entry) []string {
	var words []string
	for _, meaning := range e.Meanings {
		words = append(words, meaning.Synonyms...)
		for _, d := range meaning.Definitions {
			words = append(words, d.Synonyms...)
		}
	}
	return unique(words)
}

func antonyms(e entry) []string {
	var words []string
	for _, meaning := range e.Meanings {
		words = append(words, meaning.Antonyms...)
		for _, d := range meaning.Definitions {
			words = append(words, d.Antonyms...)
		}
	}
	return unique(words)
}

func examples(e entry) []models.Example {
	result := []models.Example{}
	for _, meaning := range e.Meanings {
		partOfSpeech := meaning.PartOfSpeech
		if partOfSpeech == "" {
			partOfSpeech = "unknown"
		}
		for _, d := range meaning.Definitions {
			if d.Example != "" {
				result = append(result, models.Example{
					Example:      d.Example,
					PartOfSpeech: partOfSpeech,
				})
			}
		}
	}
	return result
}

func unique(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	result := []string{}
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		result = append(result, w)
	}
	return result
}

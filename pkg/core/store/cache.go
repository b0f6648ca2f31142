// Package store caches analysis results keyed by document content hash.
// Hybrid layout: Postgres when a pool is configured, file system otherwise.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filinglens/pkg/models"
)

// AnalysisCache stores completed analyses by content hash so re-analyzing an
// identical document is a lookup, not a re-parse. With a pool it uses
// Postgres as primary; with only a directory it is file-based; with neither
// it is a no-op reader that always misses.
type AnalysisCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewAnalysisCache creates a cache instance. If pool is nil and dir is empty
// a default local directory is used.
func NewAnalysisCache(pool *pgxpool.Pool, dir string) *AnalysisCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "filinglens", "analyses")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check AnalysisCache dir: %v\n", err)
		}
	}
	return &AnalysisCache{pool: pool, fileDir: dir}
}

// ContentHash derives the cache key from raw document content. The declared
// form participates so the same bytes analyzed under a different form hint do
// not collide.
func ContentHash(doc models.RawDocument) string {
	h := sha256.New()
	h.Write([]byte(doc.Content))
	h.Write([]byte{0})
	h.Write([]byte(doc.Format))
	h.Write([]byte{0})
	h.Write([]byte(doc.DeclaredFormType))
	return hex.EncodeToString(h.Sum(nil))
}

// rowMiss reports whether a query error means the key is simply absent, as
// opposed to an operational failure (connection, credentials) worth logging.
func rowMiss(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// cacheEntry is the file-cache wrapper around a stored result.
type cacheEntry struct {
	ContentHash string                 `json:"content_hash"`
	CompanyName string                 `json:"company_name,omitempty"`
	ReportType  string                 `json:"report_type,omitempty"`
	Result      *models.AnalysisResult `json:"result"`
	CachedAt    time.Time              `json:"cached_at"`
}

// Get retrieves a cached result by content hash. A miss returns (nil, nil).
func (c *AnalysisCache) Get(ctx context.Context, contentHash string) (*models.AnalysisResult, error) {
	if c.pool != nil {
		query := `
			SELECT result
			FROM filing_analyses
			WHERE content_hash = $1
			LIMIT 1
		`
		var resultJSON []byte
		err := c.pool.QueryRow(ctx, query, contentHash).Scan(&resultJSON)
		if err != nil {
			if !rowMiss(err) {
				fmt.Printf("[WARNING] DB cache read failed: %v\n", err)
			}
			if c.fileDir != "" {
				return c.loadFromFile(c.hashPath(contentHash))
			}
			return nil, nil // Cache miss
		}
		var result models.AnalysisResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached result: %w", err)
		}
		return &result, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.hashPath(contentHash))
	}

	return nil, nil
}

// Save stores a completed analysis under its content hash.
func (c *AnalysisCache) Save(ctx context.Context, contentHash string, result *models.AnalysisResult) error {
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO filing_analyses (
				content_hash, analysis_id, company_name, report_type,
				data_quality, result
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (content_hash)
			DO UPDATE SET
				result = EXCLUDED.result,
				data_quality = EXCLUDED.data_quality,
				updated_at = NOW()
		`
		_, err = c.pool.Exec(ctx, query,
			contentHash, result.AnalysisID, result.CompanyName, string(result.ReportType),
			string(result.DataQuality), resultJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		entry := cacheEntry{
			ContentHash: contentHash,
			CompanyName: result.CompanyName,
			ReportType:  string(result.ReportType),
			Result:      result,
			CachedAt:    time.Now(),
		}
		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		if err := os.WriteFile(c.hashPath(contentHash), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether a content hash is already cached.
func (c *AnalysisCache) Exists(ctx context.Context, contentHash string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM filing_analyses WHERE content_hash = $1 LIMIT 1`
		var exists int
		if err := c.pool.QueryRow(ctx, query, contentHash).Scan(&exists); err == nil {
			return true
		}
	}

	if c.fileDir != "" {
		if _, err := os.Stat(c.hashPath(contentHash)); err == nil {
			return true
		}
	}

	return false
}

func (c *AnalysisCache) hashPath(contentHash string) string {
	return filepath.Join(c.fileDir, contentHash+".json")
}

func (c *AnalysisCache) loadFromFile(path string) (*models.AnalysisResult, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry cacheEntry
	if err := json.Unmarshal(bytes, &entry); err == nil && entry.Result != nil {
		return entry.Result, nil
	}

	// Fallback: maybe it's a raw AnalysisResult
	var result models.AnalysisResult
	if err := json.Unmarshal(bytes, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

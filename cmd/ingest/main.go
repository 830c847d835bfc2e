// Command ingest loads a product catalog dump into the store and embeds
// the derived category master list into the vector index.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/config"
	dbRedis "github.com/JaySanghaniKD/Product-recommendation-engine/internal/db/redis"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
	logpkg "github.com/JaySanghaniKD/Product-recommendation-engine/internal/logger"
	categoryrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/category"
	productrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/product"
	openaiTransport "github.com/JaySanghaniKD/Product-recommendation-engine/internal/transport/openai"
)

const defaultDumpURL = "https://dummyjson.com/products?limit=0"

// batchSize bounds one HSET pipeline round-trip.
const batchSize = 100

func main() {
	_ = godotenv.Load()

	var (
		file    = flag.String("file", "", "path to a products JSON dump (array or {\"products\": [...]})")
		url     = flag.String("url", defaultDumpURL, "URL to fetch the dump from when -file is not set")
		skipCat = flag.Bool("skip-categories", false, "load products only, do not embed categories")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	products, err := loadProducts(ctx, *file, *url)
	if err != nil {
		logger.Fatal("Failed to load product dump", zap.Error(err))
	}
	logger.Info("Loaded product dump", zap.Int("count", len(products)))

	productRepo := productrepo.New(store)
	if err := productRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure product index", zap.Error(err))
	}

	stored := 0
	for start := 0; start < len(products); start += batchSize {
		end := start + batchSize
		if end > len(products) {
			end = len(products)
		}
		if err := productRepo.UpsertMulti(ctx, products[start:end]); err != nil {
			logger.Fatal("Failed to store products", zap.Int("offset", start), zap.Error(err))
		}
		stored += end - start
	}
	logger.Info("Stored products", zap.Int("count", stored))

	if *skipCat {
		return
	}

	categoryRepo := categoryrepo.New(store, categoryrepo.Config{
		Dimensions:  cfg.Embedding.Dimensions,
		HNSWM:       cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	if err := categoryRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure category index", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	names := distinctCategories(products)
	logger.Info("Embedding category master list", zap.Int("count", len(names)))

	entries := make([]categoryrepo.Embedded, 0, len(names))
	for _, name := range names {
		res, err := embedder.Embed(ctx, name)
		if err != nil {
			logger.Fatal("Failed to embed category", zap.String("category", name), zap.Error(err))
		}
		entries = append(entries, categoryrepo.Embedded{
			Category: domain.Category{ID: name, Name: name},
			Vector:   res.Embedding,
		})
	}

	if err := categoryRepo.UpsertMulti(ctx, entries); err != nil {
		logger.Fatal("Failed to store categories", zap.Error(err))
	}
	logger.Info("Ingest complete",
		zap.Int("products", stored),
		zap.Int("categories", len(entries)),
	)
}

// loadProducts reads the dump from a local file or fetches it over HTTP.
func loadProducts(ctx context.Context, file, url string) ([]domain.Product, error) {
	var raw []byte
	var err error

	if file != "" {
		raw, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
	} else {
		raw, err = fetch(ctx, url)
		if err != nil {
			return nil, err
		}
	}

	return parseDump(raw)
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return raw, nil
}

// parseDump accepts either a bare JSON array or the dummyjson envelope
// {"products": [...]}.
func parseDump(raw []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var envelope struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}
	if envelope.Products == nil {
		return nil, fmt.Errorf("parse dump: no products found")
	}
	return envelope.Products, nil
}

// distinctCategories returns the sorted set of category names present in
// the dump.
func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"filinglens/pkg/core/analyzer"
	"filinglens/pkg/core/enrich"
	"filinglens/pkg/core/section"
	"filinglens/pkg/core/store"
	"filinglens/pkg/models"
)

// appConfig is the optional YAML configuration file shape.
type appConfig struct {
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
		UseDB   bool   `yaml:"use_db"`
	} `yaml:"cache"`
	Enrichment struct {
		Enabled bool   `yaml:"enabled"`
		Model   string `yaml:"model"`
	} `yaml:"enrichment"`
	Sections struct {
		Overrides string `yaml:"overrides"` // HJSON header pattern overrides
	} `yaml:"sections"`
}

func loadConfig(path string) appConfig {
	var cfg appConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config %s: %v\n", path, err)
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	var (
		configPath  = flag.String("config", "config/filinglens.yaml", "YAML config file")
		formFlag    = flag.String("form", "", "declared form type (10-K, 10-Q, 8-K, S-1, DEF 14A, 20-F)")
		companyFlag = flag.String("company", "", "company name hint")
		periodFlag  = flag.String("period", "", "period ending hint")
		formatFlag  = flag.String("format", "", "input format: html or text (default: sniff)")
		summaryFlag = flag.Bool("summary", false, "print a Markdown summary instead of JSON")
		outFlag     = flag.String("out", "", "write output to file instead of stdout")
		noCacheFlag = flag.Bool("no-cache", false, "bypass the analysis cache")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: filinglens [flags] <filing-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)

	if cfg.Sections.Overrides != "" {
		if err := section.LoadOverrides(cfg.Sections.Overrides); err != nil {
			log.Fatalf("Failed to load section overrides: %v", err)
		}
	}

	inputPath := flag.Arg(0)
	content, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", inputPath, err)
	}

	doc := models.RawDocument{
		Content:          string(content),
		Format:           resolveFormat(*formatFlag, inputPath, string(content)),
		DeclaredFormType: *formFlag,
	}
	meta := models.FilingMetadata{
		CompanyName: *companyFlag,
		FormType:    models.ParseFormType(*formFlag),
		PeriodHint:  *periodFlag,
	}

	ctx := context.Background()

	var cache *store.AnalysisCache
	if cfg.Cache.Enabled && !*noCacheFlag {
		if cfg.Cache.UseDB {
			if err := store.InitDB(ctx); err != nil {
				fmt.Printf("[WARNING] DB cache unavailable, using file cache: %v\n", err)
			} else {
				defer store.Close()
			}
		}
		cache = store.NewAnalysisCache(store.GetPool(), cfg.Cache.Dir)
	}

	hash := store.ContentHash(doc)
	if cache != nil {
		if cached, err := cache.Get(ctx, hash); err != nil {
			fmt.Printf("[WARNING] Cache read failed: %v\n", err)
		} else if cached != nil {
			fmt.Printf("[CACHE] Hit for %s\n", inputPath)
			emit(*cached, *summaryFlag, *outFlag)
			return
		}
	}

	var enricher analyzer.Enricher
	if cfg.Enrichment.Enabled {
		enricher = enrich.NewLLMEnricher(&enrich.GeminiProvider{Model: cfg.Enrichment.Model}, "gemini")
	}

	result := analyzer.New(enricher).Analyze(ctx, doc, meta)
	fmt.Printf("[ANALYZE] %s: quality=%s confidence=%.2f metrics=%d risks=%d\n",
		inputPath, result.DataQuality, result.ParsingConfidence, len(result.Metrics), len(result.RiskFactors))

	if cache != nil {
		if err := cache.Save(ctx, hash, &result); err != nil {
			fmt.Printf("[WARNING] Cache write failed: %v\n", err)
		}
	}

	emit(result, *summaryFlag, *outFlag)
}

// resolveFormat picks the document format: explicit flag, file extension,
// then a content sniff for HTML tags.
func resolveFormat(flagVal, path, content string) models.DocumentFormat {
	switch strings.ToLower(flagVal) {
	case "html":
		return models.FormatHTML
	case "text", "txt":
		return models.FormatPlain
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".htm") || strings.HasSuffix(lower, ".html") {
		return models.FormatHTML
	}
	head := content
	if len(head) > 2000 {
		head = head[:2000]
	}
	if strings.Contains(strings.ToLower(head), "<html") || strings.Contains(strings.ToLower(head), "<div") {
		return models.FormatHTML
	}
	return models.FormatPlain
}

func emit(result models.AnalysisResult, summary bool, outPath string) {
	var output []byte
	if summary {
		output = []byte(analyzer.Summary(result))
	} else {
		var err error
		output, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal result: %v", err)
		}
	}

	if outPath == "" {
		fmt.Println(string(output))
		return
	}
	if err := os.WriteFile(outPath, output, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}
	fmt.Printf("[DONE] Wrote %s\n", outPath)
}

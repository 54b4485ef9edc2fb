// Command studio runs the design pipeline once from the terminal and writes
// the resulting sketch and render PNGs into the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"designstudio/internal/infra"
	"designstudio/internal/pipeline"
	"designstudio/internal/providers/genai"
	"designstudio/internal/storage"
)

func main() {
	roomType := flag.String("room", "Living Room", "room type")
	style := flag.String("style", "Modern", "design style")
	material := flag.String("material", "Wood", "main material")
	palette := flag.String("palette", "Neutral", "color palette")
	details := flag.String("details", "", "optional free-text details")
	outDir := flag.String("out", "", "output directory (defaults to OUTPUT_DIR)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	pipeOpts := pipeline.Options{
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Logger:     &logger,
	}
	client, err := genai.NewClient(genai.Options{
		Project: cfg.GoogleProject,
		Region:  cfg.GoogleRegion,
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("generative backend unavailable")
	} else {
		pipeOpts.Backend = client
	}
	pipe := pipeline.New(pipeOpts)

	brief := pipeline.DesignBrief{
		RoomType: *roomType,
		Style:    *style,
		Material: *material,
		Palette:  *palette,
		Details:  *details,
	}

	ctx := context.Background()
	run := pipe.Run(ctx, brief)

	if run.Enhanced.OK() {
		fmt.Println("Enhanced brief:", run.Enhanced.Value())
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		logger.Error().Err(err).Msg("cannot open output directory")
		os.Exit(1)
	}
	for name, outcome := range map[string]pipeline.Outcome[[]byte]{
		"sketch.png": run.Sketch,
		"render.png": run.Render,
	} {
		if !outcome.OK() {
			continue
		}
		key, err := store.Write(ctx, run.ID+"/"+name, outcome.Value())
		if err != nil {
			logger.Error().Err(err).Str("artifact", name).Msg("write failed")
			continue
		}
		fmt.Println("Wrote", store.BasePath()+"/"+key)
	}

	if err := run.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "run failed:", err)
		os.Exit(1)
	}
}

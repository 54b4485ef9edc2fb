package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("GOOGLE_CLOUD_REGION", "")
	t.Setenv("MODEL_TEXT", "")
	t.Setenv("MODEL_IMAGE", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GoogleRegion != "us-central1" {
		t.Fatalf("GoogleRegion = %q, want us-central1", cfg.GoogleRegion)
	}
	if cfg.TextModel != "gemini-2.0-flash-lite" {
		t.Fatalf("TextModel = %q", cfg.TextModel)
	}
	if cfg.ImageModel != "gemini-2.5-flash-image" {
		t.Fatalf("ImageModel = %q", cfg.ImageModel)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	// A missing project is not a configuration error; the gateway degrades.
	if cfg.GoogleProject != "" {
		t.Fatalf("GoogleProject = %q, want empty", cfg.GoogleProject)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo-project")
	t.Setenv("GOOGLE_CLOUD_REGION", "europe-west4")
	t.Setenv("MODEL_TEXT", "gemini-next-text")
	t.Setenv("MODEL_IMAGE", "gemini-next-image")
	t.Setenv("RUN_HISTORY_LIMIT", "7")
	t.Setenv("CORS_ORIGINS", "https://studio.example.com, https://app.example.com ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GoogleProject != "demo-project" || cfg.GoogleRegion != "europe-west4" {
		t.Fatalf("project/region = %q/%q", cfg.GoogleProject, cfg.GoogleRegion)
	}
	if cfg.TextModel != "gemini-next-text" || cfg.ImageModel != "gemini-next-image" {
		t.Fatalf("models = %q/%q", cfg.TextModel, cfg.ImageModel)
	}
	if cfg.RunHistoryLimit != 7 {
		t.Fatalf("RunHistoryLimit = %d, want 7", cfg.RunHistoryLimit)
	}
	want := []string{"https://studio.example.com", "https://app.example.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %#v, want %#v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Fatalf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigIgnoresMalformedInts(t *testing.T) {
	t.Setenv("RUN_HISTORY_LIMIT", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RunHistoryLimit != 32 {
		t.Fatalf("RunHistoryLimit = %d, want default 32", cfg.RunHistoryLimit)
	}
}

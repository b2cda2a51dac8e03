package main

import "testing"

func TestSuggestRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("MIXTAPE_SUGGEST_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	// default config carries no API key
	if _, _, err := runCLI(t, []string{"suggest", "rainy day indie"}, env.configPath); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestAIBasename(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Rainy Day Indie", "rainy_day_indie"},
		{"  90's  rock!! ", "90_s_rock"},
		{"!!!", "ai_playlist"},
		{"", "ai_playlist"},
	}
	for _, tt := range tests {
		if got := aiBasename(tt.prompt); got != tt.want {
			t.Fatalf("aiBasename(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

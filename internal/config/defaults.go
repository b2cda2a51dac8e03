package config

const (
	defaultLibraryDir        = "~/music"
	defaultOutputDir         = "./playlists"
	defaultMissingDir        = "./missing-tracks"
	defaultLogDir            = "~/.local/share/mixtape/logs"
	defaultSuggestionsDir    = "./ai-suggestions"
	defaultCachePath         = "~/.cache/mixtape/library_index.db"
	defaultThreshold         = 75
	defaultLivePenaltyFactor = 0.75
	defaultInteractive       = "auto"
	defaultOutputNameFormat  = "{basename:cp}_{YYYY}-{MM}-{DD}.m3u"
	defaultSuggestBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultSuggestModel      = "google/gemini-3-flash-preview"
	defaultSuggestTimeout    = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

func defaultExtensions() []string {
	return []string{".mp3", ".flac", ".ogg", ".m4a"}
}

func defaultStripKeywords() []string {
	return []string{
		"remix", "radio edit", "edit", "version", "mix", "acoustic",
		"mono", "stereo", "reprise", "instrumental",
	}
}

func defaultLiveAlbumKeywords() []string {
	return []string{
		`\blive\b`, `\bunplugged\b`, `\bconcert\b`, "live at", "live in", "live from",
		"official bootleg", "acoustic sessions", `peel session[s]?`, `radio session[s]?`,
		"mtv unplugged",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:     defaultLibraryDir,
			OutputDir:      defaultOutputDir,
			MissingDir:     defaultMissingDir,
			LogDir:         defaultLogDir,
			SuggestionsDir: defaultSuggestionsDir,
		},
		Library: Library{
			Extensions:   defaultExtensions(),
			CacheEnabled: true,
			CachePath:    defaultCachePath,
		},
		Matching: Matching{
			Threshold:         defaultThreshold,
			LivePenaltyFactor: defaultLivePenaltyFactor,
			StripKeywords:     defaultStripKeywords(),
			LiveAlbumKeywords: defaultLiveAlbumKeywords(),
			Interactive:       defaultInteractive,
		},
		Playlist: Playlist{
			OutputNameFormat: defaultOutputNameFormat,
		},
		Suggest: Suggest{
			BaseURL:         defaultSuggestBaseURL,
			Model:           defaultSuggestModel,
			TimeoutSeconds:  defaultSuggestTimeout,
			SaveSuggestions: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldlens/fieldlens/internal/docstore"
	"github.com/fieldlens/fieldlens/internal/llm"
	"github.com/fieldlens/fieldlens/internal/tracker"
)

const (
	configName = ".fieldlens"
	envPrefix  = "FIELDLENS"
)

// NotesConfig locates the document corpus on disk.
type NotesConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// LLMConfig configures the model provider used for extraction and analysis.
type LLMConfig struct {
	Provider       string  `mapstructure:"provider" validate:"required,oneof=openai ollama anthropic gemini"`
	Model          string  `mapstructure:"model"`
	APIKey         string  `mapstructure:"apiKey"`
	BaseURL        string  `mapstructure:"baseURL"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds" validate:"gte=0"`
	Temperature    float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// TrackerConfig configures the local action-item tracker. Path is the
// directory holding the task database.
type TrackerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Notes   NotesConfig   `mapstructure:"notes"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Tracker TrackerConfig `mapstructure:"tracker"`
	Output  struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"output"`
}

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// GetConfig returns the loaded application configuration.
func GetConfig() *AppConfig {
	return &GlobalAppConfig
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., FIELDLENS_NOTES_DIR
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")        // ./.fieldlens.yaml
		viper.AddConfigPath(home)       // $HOME/.fieldlens.yaml
		viper.SetConfigName(configName) // file named ".fieldlens"
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("notes.dir", "notes")
	viper.SetDefault("output.dir", ".fieldlens")

	viper.SetDefault("llm.provider", string(llm.DefaultProvider))
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.baseURL", "")
	viper.SetDefault("llm.timeoutSeconds", 120)

	viper.SetDefault("tracker.enabled", true)
	viper.SetDefault("tracker.path", ".fieldlens")

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// API keys usually live in the environment, not the config file.
	if GlobalAppConfig.LLM.APIKey == "" {
		switch llm.Provider(GlobalAppConfig.LLM.Provider) {
		case llm.ProviderOpenAI:
			GlobalAppConfig.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case llm.ProviderAnthropic:
			GlobalAppConfig.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case llm.ProviderGemini:
			GlobalAppConfig.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}

	if err := validate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}
}

// newGenerator builds the LLM client from the loaded configuration.
func newGenerator() *llm.Client {
	cfg := GetConfig()
	return llm.NewClient(llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
}

// newStore builds the document store rooted at the configured notes dir.
func newStore() *docstore.LocalStore {
	return docstore.NewLocalStore(GetConfig().Notes.Dir)
}

// newTracker builds the action-item tracker, or returns nil when disabled.
func newTracker() (*tracker.SQLiteTracker, error) {
	cfg := GetConfig()
	if !cfg.Tracker.Enabled {
		return nil, nil
	}
	t, err := tracker.NewSQLiteTracker(cfg.Tracker.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker database: %w", err)
	}
	return t, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/appengine-ltd/autosave-slots/internal/slots"
)

const (
	DefaultSettingsFile = "autosave-slots.toml"
	DefaultSaveDir      = "saves"
	DefaultStorePath    = "autosave-config.json"

	LangEnglish = "en"
	LangKorean  = "ko"
)

var autosaveTextByLang = map[string]string{
	LangEnglish: slots.DefaultAutosaveText,
	LangKorean:  "자동저장",
}

var fileTextByLang = map[string]string{
	LangEnglish: slots.DefaultFileText,
	LangKorean:  "파일",
}

// Config is the parsed settings file.
type Config struct {
	MaxSavefiles int    `toml:"max_savefiles"`
	NumSaveSlots int    `toml:"num_save_slots"`
	AutosaveText string `toml:"autosave_text"`
	FileText     string `toml:"file_text"`
	Lang         string `toml:"lang"`
	SaveDir      string `toml:"save_dir"`
	StorePath    string `toml:"config_path"`
}

func Default() Config {
	return Config{
		MaxSavefiles: slots.DefaultMaxSavefiles,
		NumSaveSlots: slots.DefaultNumSaveSlots,
		Lang:         LangEnglish,
		SaveDir:      DefaultSaveDir,
		StorePath:    DefaultStorePath,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(string(data))
}

func Parse(body string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(body, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse settings: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown settings: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxSavefiles < slots.MinSavefiles || c.MaxSavefiles > slots.MaxSavefiles {
		return fmt.Errorf("max_savefiles must be between %d and %d, got %d", slots.MinSavefiles, slots.MaxSavefiles, c.MaxSavefiles)
	}
	if c.NumSaveSlots < slots.MinNumSaveSlots || c.NumSaveSlots > slots.MaxNumSaveSlots {
		return fmt.Errorf("num_save_slots must be between %d and %d, got %d", slots.MinNumSaveSlots, slots.MaxNumSaveSlots, c.NumSaveSlots)
	}
	if _, ok := autosaveTextByLang[c.lang()]; !ok {
		return fmt.Errorf("lang must be %q or %q, got %q", LangEnglish, LangKorean, c.Lang)
	}
	if strings.TrimSpace(c.SaveDir) == "" {
		return errors.New("save_dir must not be empty")
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config_path must not be empty")
	}
	return nil
}

func (c Config) lang() string {
	l := strings.ToLower(strings.TrimSpace(c.Lang))
	if l == "" {
		return LangEnglish
	}
	return l
}

// Layout builds the slot layout, filling empty labels from the language.
func (c Config) Layout() (slots.Layout, error) {
	autosaveText := strings.TrimSpace(c.AutosaveText)
	if autosaveText == "" {
		autosaveText = autosaveTextByLang[c.lang()]
	}
	fileText := strings.TrimSpace(c.FileText)
	if fileText == "" {
		fileText = fileTextByLang[c.lang()]
	}
	return slots.NewLayout(slots.LayoutOptions{
		MaxSavefiles: c.MaxSavefiles,
		NumSaveSlots: c.NumSaveSlots,
		AutosaveText: autosaveText,
		FileText:     fileText,
	})
}

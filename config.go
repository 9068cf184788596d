package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	rcName    = ".halfplanerc"
	envPrefix = "HALFPLANE"
)

type Config struct {
	SaveDirectory string  `mapstructure:"save_directory"`
	Confirmations bool    `mapstructure:"confirmations"`
	Zoom          float64 `mapstructure:"zoom" validate:"gte=10,lte=100"`
	ExportWidth   int     `mapstructure:"export_width" validate:"gte=100,lte=8000"`
	ExportHeight  int     `mapstructure:"export_height" validate:"gte=100,lte=8000"`
	DebounceMS    int     `mapstructure:"debounce_ms" validate:"gte=0,lte=5000"`
	PanStep       int     `mapstructure:"pan_step" validate:"gte=1,lte=400"`
	LogFile       string  `mapstructure:"log_file"`
}

// flagKeys binds command line flags to config keys. A flag given on the
// command line wins over the rc file and the environment.
var flagKeys = map[string]string{
	"width":  "export_width",
	"height": "export_height",
	"zoom":   "zoom",
}

// configAliases maps the short spellings accepted in the rc file to the
// canonical keys.
var configAliases = map[string]string{
	"savedir":       "save_directory",
	"savedirectory": "save_directory",
	"confirm":       "confirmations",
	"width":         "export_width",
	"height":        "export_height",
	"debounce":      "debounce_ms",
	"log":           "log_file",
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("save_directory", "")
	v.SetDefault("confirmations", true)
	v.SetDefault("zoom", 40.0)
	v.SetDefault("export_width", 800)
	v.SetDefault("export_height", 600)
	v.SetDefault("debounce_ms", 300)
	v.SetDefault("pan_step", 16)
	v.SetDefault("log_file", "")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// defaultRCPath returns ~/.halfplanerc, or "" if there is no home.
func defaultRCPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, rcName)
}

// loadConfig reads defaults, then the rc file at rcPath (properties
// format), then HALFPLANE_* variables, optionally seeded from the dotenv
// file at envPath, then any flags set in flags (may be nil). Missing files
// are skipped.
func loadConfig(rcPath, envPath string, flags *pflag.FlagSet) (*Config, error) {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, errors.Wrapf(err, "config.godotenv(%s)", envPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "config.os.Stat(%s)", envPath)
		}
	}

	v := newConfigViper()
	if rcPath != "" {
		if _, err := os.Stat(rcPath); err == nil {
			v.SetConfigFile(rcPath)
			v.SetConfigType("properties")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "reading %s", rcPath)
			}
			for alias, key := range configAliases {
				if v.InConfig(alias) && !v.InConfig(key) {
					v.Set(key, v.Get(alias))
				}
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding --%s", name)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	config.SaveDirectory = expandPath(config.SaveDirectory)
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report rc file keys rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
	})
}

func validateConfig(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fe.Translate(translator)
	}
	return errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

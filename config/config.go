package config

import (
	"fmt"
	"os"
	"time"

	"github.com/exlskills/storyboardutil/ir"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// The app is in production or debug mode
	Mode              string        `envconfig:"MODE" default:"production"`
	ServerAddr        string        `envconfig:"SERVER_ADDR" default:"0.0.0.0"`
	ServerPort        string        `envconfig:"SERVER_PORT" default:"8080"`
	MaxUploadBytes    int64         `envconfig:"MAX_UPLOAD_BYTES" default:"2097152"`
	DefaultFontName   string        `envconfig:"DEFAULT_FONT_NAME" default:"Calibri"`
	DefaultFontColor  string        `envconfig:"DEFAULT_FONT_COLOR" default:"#111111"`
	DefaultBgColor    string        `envconfig:"DEFAULT_BG_COLOR" default:"#FFFFFF"`
	MaxTextLines      int           `envconfig:"MAX_TEXT_LINES" default:"6"`
	MaxBulletLines    int           `envconfig:"MAX_BULLET_LINES" default:"6"`
	ImageFetchTimeout time.Duration `envconfig:"IMAGE_FETCH_TIMEOUT" default:"10s"`
	MaxImagePixels    uint          `envconfig:"MAX_IMAGE_PIXELS" default:"2000"`
	DeckSubtitle      string        `envconfig:"DECK_SUBTITLE" default:"Storyboard generated automatically"`
	TempDir           string        `envconfig:"TEMP_DIR"`
}

var conf *Config

const (
	DebugMode      = "debug"
	ProductionMode = "production"
)

func init() {
	conf = &Config{}
	err := envconfig.Process("storyboard", conf)
	if err != nil {
		fmt.Println("Fatal error processing configuration")
		panic(err)
	}
	l := conf.GetLogger()
	if !conf.IsDebugMode() && !conf.IsProductionMode() {
		l.Fatal("Invalid STORYBOARD_MODE variable, it must be either `debug` or `production`")
	}
}

// Cfg returns the configuration - will panic if the config has not been loaded or is nil (which shouldn't happen as that's implicit in the package init)
func Cfg() *Config {
	if conf == nil {
		panic("Config is nil")
	}
	return conf
}

func (cfg *Config) GetLogger() *logrus.Logger {
	logLvl := logrus.InfoLevel
	if cfg.IsDebugMode() {
		logLvl = logrus.DebugLevel
	}
	var l = &logrus.Logger{
		Out:       os.Stderr,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logLvl,
	}
	return l
}

func (cfg *Config) IsDebugMode() bool {
	return cfg.Mode == DebugMode
}

func (cfg *Config) IsProductionMode() bool {
	return cfg.Mode == ProductionMode
}

// Theme is the deck theme used when a request leaves a field empty.
func (cfg *Config) Theme() ir.Theme {
	return ir.Theme{
		FontName:  cfg.DefaultFontName,
		FontColor: cfg.DefaultFontColor,
		BgColor:   cfg.DefaultBgColor,
	}
}

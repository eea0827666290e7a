package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/CN-TU/go-flowfmt/logger"
	"github.com/CN-TU/go-flowfmt/output"
)

const envPrefix = "flowfmt"

var logFile io.Closer

func init() {
	flags := cli.PersistentFlags()

	flags.String("config", "", "Configuration file (yaml)")
	viper.BindPFlag("config", flags.Lookup("config"))

	flags.String("log-level", "WARNING", "Log level (CRITICAL|ERROR|WARNING|NOTICE|INFO|DEBUG)")
	viper.BindPFlag("log-level", flags.Lookup("log-level"))

	flags.String("log-file", "", "Additionally append log messages to this file")
	viper.BindPFlag("log-file", flags.Lookup("log-file"))

	flags.String("formats", "", "Yaml file with additional named formats")
	viper.BindPFlag("formats", flags.Lookup("formats"))
}

// initConfig reads the configuration file and environment, sets up logging, and loads
// additional formats. Flags take precedence over environment variables (FLOWFMT_LOG_LEVEL, ...),
// which take precedence over the configuration file.
func initConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if fn := viper.GetString("config"); fn != "" {
		viper.SetConfigFile(fn)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("couldn't read config: %w", err)
		}
	}

	level := viper.GetString("log-level")
	if fn := viper.GetString("log-file"); fn != "" {
		f, err := logger.InitLog(fn, level)
		if err != nil {
			return err
		}
		logFile = f
	} else if err := logger.InitConsoleLog(level); err != nil {
		return err
	}
	if fn := viper.ConfigFileUsed(); fn != "" {
		log.Infof("using config file %s", fn)
	}

	if fn := viper.GetString("formats"); fn != "" {
		if _, err := output.LoadLayouts(fn); err != nil {
			return err
		}
	}
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

type renderConfig struct {
	format   string
	plain    bool
	mode     output.Mode
	quiet    bool
	geoDB    string
	output   string
	flush    bool
	location *time.Location
}

func loadRenderConfig() (*renderConfig, error) {
	conf := &renderConfig{
		format: viper.GetString("format"),
		plain:  viper.GetBool("plain"),
		quiet:  viper.GetBool("quiet"),
		geoDB:  viper.GetString("geo-db"),
		output: viper.GetString("output"),
		flush:  viper.GetBool("flush"),
	}
	mode, err := output.ParseMode(viper.GetString("mode"))
	if err != nil {
		return nil, err
	}
	if viper.GetBool("long-v6") {
		mode = output.ModeV6
	}
	conf.mode = mode
	if conf.location, err = time.LoadLocation(viper.GetString("timezone")); err != nil {
		return nil, err
	}
	return conf, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sirupsen/logrus"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log every applied operation'"`

	Main *cli.Command
}

func (cfg *MainConfig) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

type ApplyConfig struct {
	*MainConfig
	YAML            bool `cli:"name=y aliases=yaml desc='patch and document are yaml'"`
	Msgpack         bool `cli:"name=m aliases=msgpack desc='patch is msgpack'"`
	Keep            bool `cli:"name=k aliases=keep desc='keep going after a failed operation'"`
	CaseInsensitive bool `cli:"name=i desc='match object keys case insensitively'"`
	Diff            bool `cli:"name=diff desc='print a diff instead of the result'"`
	Color           bool `cli:"name=color desc='color the diff'"`

	Apply *cli.Command
}

func (cfg *ApplyConfig) patchFormat() (string, error) {
	switch {
	case cfg.YAML && cfg.Msgpack:
		return "", fmt.Errorf("%w: must specify at most one of -y[aml] -m[sgpack]", cli.ErrUsage)
	case cfg.YAML:
		return formatYAML, nil
	case cfg.Msgpack:
		return formatMsgpack, nil
	}
	return formatJSON, nil
}

// useColor reports whether diff output to w is colored. An explicit -color
// wins, otherwise terminals get colors.
func (cfg *ApplyConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ConvertConfig struct {
	*MainConfig
	From string `cli:"name=from desc='input format: json, yaml or msgpack'"`
	To   string `cli:"name=to desc='output format: json, yaml or msgpack'"`

	Convert *cli.Command
}

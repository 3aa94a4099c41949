package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: convert requires 1 argument, a patch", cli.ErrUsage)
	}
	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	out, err := cfg.run(data)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}

func (cfg *ConvertConfig) run(data []byte) ([]byte, error) {
	from, err := parseFormat(cfg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseFormat(cfg.To)
	if err != nil {
		return nil, err
	}
	patch, err := decodePatch(data, from)
	if err != nil {
		return nil, err
	}
	return encodePatch(patch, to)
}

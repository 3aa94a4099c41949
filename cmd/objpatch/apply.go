package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sanity-io/objpatch"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires 2 arguments, a patch and a document", cli.ErrUsage)
	}
	patchData, err := readInput(args[0])
	if err != nil {
		return err
	}
	docData, err := readInput(args[1])
	if err != nil {
		return err
	}
	return cfg.run(patchData, docData, cc.Out)
}

func (cfg *ApplyConfig) run(patchData, docData []byte, out io.Writer) error {
	patchFormat, err := cfg.patchFormat()
	if err != nil {
		return err
	}
	docFormat := formatJSON
	if cfg.YAML {
		docFormat = formatYAML
	}

	patch, err := decodePatch(patchData, patchFormat)
	if err != nil {
		return err
	}
	doc, err := decodeDocument(docData, docFormat, cfg.CaseInsensitive)
	if err != nil {
		return err
	}
	before, err := encodeDocument(doc, docFormat)
	if err != nil {
		return err
	}

	log := cfg.logger()
	opts := objpatch.DefaultOptions.WithLogger(log)
	var errLog objpatch.ErrorLog
	if cfg.Keep {
		opts = opts.WithErrorSink(errLog.Add)
	}
	if err := opts.ApplyPatch(doc, patch); err != nil {
		return errors.Wrap(err, "applying patch")
	}
	for _, e := range errLog.Errors() {
		log.WithFields(logrus.Fields{
			"op":   e.Operation.Op,
			"path": e.Operation.Path,
			"kind": e.Kind.String(),
		}).Warn(e.Message)
	}

	after, err := encodeDocument(doc, docFormat)
	if err != nil {
		return err
	}
	if cfg.Diff {
		writeDiff(out, string(before), string(after), cfg.useColor(out))
	} else if _, err := out.Write(after); err != nil {
		return err
	}
	if err := errLog.Err(); err != nil {
		return errors.Wrapf(err, "%d operations failed", errLog.Len())
	}
	return nil
}

// writeDiff prints a line diff of two renderings of a document.
func writeDiff(w io.Writer, before, after string, colored bool) {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	if colored {
		removed.EnableColor()
		added.EnableColor()
	} else {
		removed.DisableColor()
		added.DisableColor()
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				removed.Fprintf(w, "-%s\n", line)
			case diffmatchpatch.DiffInsert:
				added.Fprintf(w, "+%s\n", line)
			default:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Command svg2gcode converts an SVG document into G-code for a two axis
// plotter or cutter.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vasalvit/svg2gcode"
)

var (
	flagIn             = flag.String("in", "", "input SVG file (default: stdin)")
	flagOut            = flag.String("out", "", "output G-code file (default: stdout)")
	flagSettings       = flag.String("settings", "", "settings file, JSON or TOML by extension")
	flagTolerance      = flag.Float64("tolerance", 0.002, "maximum deviation from curves in device units")
	flagFeedrate       = flag.Float64("feedrate", 300, "feedrate of drawing moves")
	flagDPI            = flag.Float64("dpi", 96, "document dots per inch; sets resolution to 25.4/dpi")
	flagResolution     = flag.Float64("resolution", 1, "device units per document unit")
	flagOrigin         = flag.String("origin", "0,0", "device point the origin policy anchors to, as x,y")
	flagOriginPolicy   = flag.String("origin-policy", "none", "none, lower-left, center or upper-left")
	flagCircular       = flag.Bool("circular", false, "emit G2/G3 arcs where a curve fits a circle")
	flagToolOn         = flag.String("on", "", "G-code that engages the tool")
	flagToolOff        = flag.String("off", "", "G-code that disengages the tool")
	flagBegin          = flag.String("begin", "", "G-code written at program start")
	flagEnd            = flag.String("end", "", "G-code written at program end")
	flagLineNumbers    = flag.Bool("line-numbers", false, "prefix lines with N numbers")
	flagChecksums      = flag.Bool("checksums", false, "append *checksum to lines")
	flagCommentStyle   = flag.String("comment-style", "parentheses", "parentheses or semicolon")
	flagWidth          = flag.String("width", "", "override document width, e.g. 210mm")
	flagHeight         = flag.String("height", "", "override document height, e.g. 297mm")
	flagExportSettings = flag.Bool("export-settings", false, "write the merged settings as TOML and exit")
	flagLogLevel       = flag.String("log-level", "warn", "debug, info, warn or error")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := svg2gcode.NewLogger(*flagLogLevel, os.Stderr)

	settings := svg2gcode.DefaultSettings()
	if *flagSettings != "" {
		s, err := loadSettings(*flagSettings)
		if err != nil {
			return err
		}
		settings = s
		log.Debug("loaded settings", "file", *flagSettings)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	settings, err := applyFlags(settings, set)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if *flagExportSettings {
		return svg2gcode.EncodeSettingsTOML(os.Stdout, settings)
	}

	var opts svg2gcode.Options
	opts.Logger = log
	if opts.Dimensions, err = dimensions(*flagWidth, *flagHeight); err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if *flagIn != "" && *flagIn != "-" {
		f, err := os.Open(*flagIn)
		if err != nil {
			return errors.Wrap(err, "open svg")
		}
		defer f.Close()
		in = f
	}
	doc, err := svg2gcode.ParseDocument(in)
	if err != nil {
		return err
	}

	program, err := svg2gcode.Convert(doc, settings, opts)
	if err != nil {
		return err
	}
	if n := len(program.Warnings); n > 0 {
		log.Info("conversion finished with skipped geometry", "warnings", n)
	}

	var out io.Writer = os.Stdout
	if *flagOut != "" && *flagOut != "-" {
		f, err := os.Create(*flagOut)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)
	for _, line := range program.Lines(settings.Postprocess) {
		fmt.Fprintln(bw, line)
	}
	return errors.Wrap(bw.Flush(), "write gcode")
}

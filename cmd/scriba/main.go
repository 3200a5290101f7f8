package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tsawler/scriba"
	"github.com/tsawler/scriba/format"
	"github.com/tsawler/scriba/linkstore"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = cmdExtract(os.Args[2:])
	case "batch":
		err = cmdBatch(os.Args[2:])
	case "links":
		err = cmdLinks(os.Args[2:])
	case "html":
		err = cmdHTML(os.Args[2:])
	case "history":
		err = cmdHistory(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if cerr := scriba.Shutdown(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scriba: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `scriba — recover text and links from documents and images

usage:
  scriba extract [flags] <file>       print recovered text (-json for the full record)
  scriba batch   [flags] <path ...>   extract many files concurrently
  scriba links   [flags] <file>       print the links found in a file
  scriba html    [flags] <file>       print text with links wrapped in anchors
  scriba history [flags] <term>       search previously recorded links

Run 'scriba <command> -h' for command flags. Defaults may also come
from scriba.toml (see -config), with SCRIBA_* environment overrides.
`)
}

// sharedFlags are the options every extraction subcommand accepts.
type sharedFlags struct {
	config    string
	verbose   bool
	lang      string
	noRepair  bool
	noReorder bool
	noSave    bool
	out       string
	db        string
}

func registerShared(fs *flag.FlagSet, sf *sharedFlags) {
	fs.StringVar(&sf.config, "config", "", "TOML config file (default scriba.toml)")
	fs.BoolVar(&sf.verbose, "verbose", false, "enable debug logging")
	fs.StringVar(&sf.lang, "lang", "", "OCR language for images (overrides config)")
	fs.BoolVar(&sf.noRepair, "no-repair", false, "skip text repair")
	fs.BoolVar(&sf.noReorder, "no-reorder", false, "skip reading-order reconstruction")
	fs.BoolVar(&sf.noSave, "no-save", false, "do not write link reports")
	fs.StringVar(&sf.out, "out", "", "directory for link reports (default alongside the source)")
	fs.StringVar(&sf.db, "db", "", "SQLite history database (overrides config)")
}

// session carries everything a subcommand resolves once: config, logger
// and the optional history store.
type session struct {
	cfg    Config
	logger *slog.Logger
	store  *linkstore.Store
}

func newSession(ctx context.Context, sf *sharedFlags) (*session, error) {
	cfg, err := loadConfig(sf.config)
	if err != nil {
		return nil, err
	}
	logger := newLogger(sf.verbose)
	st, err := openStore(ctx, cfg, sf.db, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: st}, nil
}

func (s *session) close() {
	if s.store != nil {
		s.store.Close()
	}
}

// extractor assembles a configured extractor for one file.
func (s *session) extractor(path string, sf *sharedFlags) *scriba.Extractor {
	return s.apply(scriba.Open(path), sf)
}

func (s *session) apply(e *scriba.Extractor, sf *sharedFlags) *scriba.Extractor {
	e = e.WithLogger(s.logger)

	lang := s.cfg.OCR.Language
	if sf.lang != "" {
		lang = sf.lang
	}
	if lang != "" {
		e = e.WithOCRLanguage(lang)
	}
	if sf.noRepair {
		e = e.WithoutRepair()
	}
	if sf.noReorder {
		e = e.WithoutReordering()
	}
	if sf.noSave || !s.cfg.Links.Save {
		e = e.WithoutSavingLinks()
	} else {
		dir := s.cfg.Links.OutputDir
		if sf.out != "" {
			dir = sf.out
		}
		e = e.SaveLinks(dir)
	}
	if s.store != nil {
		e = e.WithStore(s.store)
	}
	return e
}

// newLogger returns a text logger on stderr, debug-level when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens the history database when one is configured. A nil
// store means history is off.
func openStore(ctx context.Context, cfg Config, dbFlag string, logger *slog.Logger) (*linkstore.Store, error) {
	path := cfg.History.Path
	if dbFlag != "" {
		path = dbFlag
	}
	if path == "" {
		return nil, nil
	}
	st := linkstore.New(path, linkstore.WithLogger(logger))
	if err := st.Init(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	return st, nil
}

func reportWarnings(logger *slog.Logger, file string, warnings []scriba.Warning) {
	for _, w := range warnings {
		logger.Warn(w.Message, "file", file, "code", w.Code.String())
	}
}

func printJSON(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func cmdExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var sf sharedFlags
	registerShared(fs, &sf)
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	csvReport := fs.Bool("csv", false, "also write the link report as CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("extract requires exactly one file")
	}
	file := fs.Arg(0)

	ctx := context.Background()
	s, err := newSession(ctx, &sf)
	if err != nil {
		return err
	}
	defer s.close()

	res, warnings, err := s.extractor(file, &sf).Result()
	if err != nil {
		return err
	}
	reportWarnings(s.logger, file, warnings)

	if *csvReport && len(res.Links) > 0 {
		dir := s.cfg.Links.OutputDir
		if sf.out != "" {
			dir = sf.out
		}
		w := linkstore.NewWriterWithConfig(linkstore.WriterConfig{Format: linkstore.ReportFormatCSV})
		p, err := w.Save(res.Links, file, dir)
		if err != nil {
			return fmt.Errorf("writing csv report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "csv report: %s\n", p)
	}

	if *asJSON {
		return printJSON(res)
	}
	fmt.Println(res.Text)
	return nil
}

func cmdLinks(args []string) error {
	fs := flag.NewFlagSet("links", flag.ExitOnError)
	var sf sharedFlags
	registerShared(fs, &sf)
	asJSON := fs.Bool("json", false, "print links as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("links requires exactly one file")
	}
	file := fs.Arg(0)

	ctx := context.Background()
	s, err := newSession(ctx, &sf)
	if err != nil {
		return err
	}
	defer s.close()

	found, warnings, err := s.extractor(file, &sf).Links()
	if err != nil {
		return err
	}
	reportWarnings(s.logger, file, warnings)

	if *asJSON {
		return printJSON(found)
	}
	for _, link := range found {
		fmt.Println(link)
	}
	return nil
}

func cmdHTML(args []string) error {
	fs := flag.NewFlagSet("html", flag.ExitOnError)
	var sf sharedFlags
	registerShared(fs, &sf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("html requires exactly one file")
	}
	file := fs.Arg(0)

	ctx := context.Background()
	s, err := newSession(ctx, &sf)
	if err != nil {
		return err
	}
	defer s.close()

	html, warnings, err := s.extractor(file, &sf).ClickableHTML()
	if err != nil {
		return err
	}
	reportWarnings(s.logger, file, warnings)

	fmt.Println(html)
	return nil
}

// batchRow is the JSON shape of one batch entry. Errors and warnings
// flatten to strings so the output is plain to consume.
type batchRow struct {
	FilePath string         `json:"file_path"`
	Error    string         `json:"error,omitempty"`
	Warnings string         `json:"warnings,omitempty"`
	Result   *scriba.Result `json:"result,omitempty"`
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var sf sharedFlags
	registerShared(fs, &sf)
	workers := fs.Int("workers", 0, "concurrent extractions (default GOMAXPROCS)")
	asJSON := fs.Bool("json", false, "print all results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("batch requires at least one file, directory or glob")
	}

	paths, err := expandArgs(fs.Args())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	ctx := context.Background()
	s, err := newSession(ctx, &sf)
	if err != nil {
		return err
	}
	defer s.close()

	results := scriba.BatchExtract(ctx, paths, scriba.BatchOptions{
		Concurrency: *workers,
		Configure: func(e *scriba.Extractor) *scriba.Extractor {
			return s.apply(e, &sf)
		},
	})

	if *asJSON {
		rows := make([]batchRow, 0, len(results))
		for _, r := range results {
			row := batchRow{FilePath: r.FilePath, Result: r.Result}
			if r.Err != nil {
				row.Error = r.Err.Error()
			}
			row.Warnings = scriba.FormatWarnings(r.Warnings)
			rows = append(rows, row)
		}
		return printJSON(rows)
	}

	extracted := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", r.FilePath, r.Err)
			continue
		}
		reportWarnings(s.logger, r.FilePath, r.Warnings)
		extracted++
		fmt.Fprintf(os.Stderr, "  %s: %d chars, %d links\n", r.FilePath, len(r.Result.Text), len(r.Result.Links))
	}
	fmt.Fprintf(os.Stderr, "done: %d of %d extracted\n", extracted, len(results))
	if extracted == 0 {
		return fmt.Errorf("no files extracted")
	}
	return nil
}

// expandArgs turns file, directory and glob arguments into a flat file
// list. Directories contribute their recognizable files, non-recursive.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			paths = append(paths, matches...)
			continue
		}

		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			entries, err := os.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", arg, err)
			}
			for _, e := range entries {
				if e.IsDir() || format.Detect(e.Name()) == format.Unknown {
					continue
				}
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
			continue
		}

		// Missing files surface as per-file results, not as an
		// up-front error.
		paths = append(paths, arg)
	}
	return paths, nil
}

func cmdHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	config := fs.String("config", "", "TOML config file (default scriba.toml)")
	db := fs.String("db", "", "SQLite history database (overrides config)")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	asJSON := fs.Bool("json", false, "print matches as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("history requires a search term")
	}

	cfg, err := loadConfig(*config)
	if err != nil {
		return err
	}
	logger := newLogger(*verbose)

	path := cfg.History.Path
	if *db != "" {
		path = *db
	}
	if path == "" {
		return fmt.Errorf("no history database configured; pass -db or set history.path")
	}

	ctx := context.Background()
	st := linkstore.New(path, linkstore.WithLogger(logger))
	if err := st.Init(ctx); err != nil {
		st.Close()
		return fmt.Errorf("opening history %s: %w", path, err)
	}
	defer st.Close()

	rows, err := st.SearchLinks(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no matches")
		return nil
	}
	for _, row := range rows {
		fmt.Printf("%s\t%s\t%s\n", row.Link, row.Type, row.FilePath)
	}
	return nil
}

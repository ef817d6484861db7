package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paygate"
	"github.com/goliatone/go-paygate/internal/config"
	"github.com/goliatone/go-paygate/internal/logging"
	"github.com/goliatone/go-paygate/pkg/encode"
	"github.com/goliatone/go-paygate/pkg/encoders/templatedoc"
	"github.com/goliatone/go-paygate/pkg/financial"
	"github.com/goliatone/go-paygate/pkg/prompt"
	"github.com/goliatone/go-paygate/pkg/registry"
)

// assignments collects repeated -set field=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(raw string) error {
	if !strings.Contains(raw, "=") {
		return fmt.Errorf("expected field=value, got %q", raw)
	}
	*a = append(*a, raw)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "paygate-cli: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("paygate-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sets assignments
	requestType := fs.String("type", "", "request type to build (see -list)")
	valuesFile := fs.String("values", "", "YAML or JSON file with field values")
	format := fs.String("format", cfg.Format, "output encoder: xml, json, form or template")
	templatePath := fs.String("template", "", "pongo2 template used by -format template")
	output := fs.String("output", "", "output file (stdout if empty)")
	catalogDir := fs.String("catalog", cfg.CatalogDir, "directory with additional catalog files")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level")
	interactive := fs.Bool("interactive", false, "prompt for missing required fields")
	optional := fs.Bool("optional", false, "with -interactive, prompt for optional fields too")
	list := fs.Bool("list", false, "list registered request types and exit")
	fs.Var(&sets, "set", "field=value assignment; repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New("paygate-cli", *logLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, err := paygate.LoadRegistry(*catalogDir)
	if err != nil {
		return err
	}
	if *list {
		return printTypes(stdout, reg)
	}
	if strings.TrimSpace(*requestType) == "" {
		return errors.New("-type is required (use -list to see request types)")
	}

	values, err := collectValues(*valuesFile, sets)
	if err != nil {
		return err
	}

	req, err := financial.New(*requestType, financial.WithRegistry(reg), financial.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := paygate.Populate(req, values); err != nil {
		return err
	}
	if *interactive {
		var opts []prompt.Option
		if *optional {
			opts = append(opts, prompt.WithOptional())
		}
		if err := prompt.Fill(ctx, prompt.NewSurveyDriver(), req, opts...); err != nil {
			return err
		}
	}

	encoders, err := encoderRegistry(*templatePath)
	if err != nil {
		return err
	}
	encoder, err := encoders.Get(*format)
	if err != nil {
		return err
	}

	doc, err := req.Document()
	if err != nil {
		return err
	}
	payload, err := encoder.Encode(doc)
	if err != nil {
		return err
	}
	logger.Info("document encoded",
		zap.String("request_type", doc.RequestType()),
		zap.String("encoder", encoder.Name()),
		zap.Int("nodes", doc.Len()),
	)

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		_, err := fmt.Fprintf(stdout, "%s request written to %s\n", doc.RequestType(), *output)
		return err
	}
	_, err = stdout.Write(payload)
	return err
}

func collectValues(path string, sets assignments) (map[string]any, error) {
	values := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse values %s: %w", path, err)
		}
	}
	for _, raw := range sets {
		field, value, _ := strings.Cut(raw, "=")
		values[strings.TrimSpace(field)] = value
	}
	return values, nil
}

func encoderRegistry(templatePath string) (*encode.Registry, error) {
	encoders := encode.DefaultRegistry()
	if templatePath == "" {
		return encoders, nil
	}
	enc, err := templatedoc.Load(os.DirFS(filepath.Dir(templatePath)), filepath.Base(templatePath))
	if err != nil {
		return nil, err
	}
	if err := encoders.Register(enc); err != nil {
		return nil, err
	}
	return encoders, nil
}

func printTypes(w io.Writer, reg *registry.Registry) error {
	for _, rt := range reg.Types() {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", rt.ID(), rt.Description()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-12s required: %s\n", "", strings.Join(rt.Required(), ", ")); err != nil {
			return err
		}
	}
	return nil
}

package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Supported summary output formats.
const (
	SummaryFormatText = "text"
	SummaryFormatJSON = "json"
	SummaryFormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for summary formats other than text, json and yaml.
var ErrUnsupportedFormat = errors.New("unsupported summary format")

// Summary bundles resolved options with the context they were produced in.
type Summary struct {
	Options    TransformOptions       `json:"options" yaml:"options"`
	SourceType SourceType             `json:"sourceType" yaml:"sourceType"`
	SourcePath string                 `json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`
	Sources    map[string]ValueSource `json:"-" yaml:"-"`
	Overrides  []string               `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Findings   []Finding              `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// FormatSummary renders a summary in the requested format.
func FormatSummary(summary Summary, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", SummaryFormatText:
		return formatSummaryText(summary)
	case SummaryFormatJSON:
		encoded, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal summary json: %w", err)
		}
		return string(encoded), nil
	case SummaryFormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return "", fmt.Errorf("marshal summary yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("marshal summary yaml: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

func formatSummaryText(summary Summary) (string, error) {
	rows, err := flattenOptions(summary.Options)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	if summary.SourcePath != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", summary.SourcePath)
	}
	fmt.Fprintf(tw, "Source type:\t%s\n", summary.SourceType)
	if len(summary.Overrides) > 0 {
		fmt.Fprintf(tw, "Overrides:\t%s\n", strings.Join(summary.Overrides, ", "))
	}
	for _, finding := range summary.Findings {
		fmt.Fprintf(tw, "Finding:\t%s\n", finding)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Option\tValue\tSource")

	paths := make([]string, 0, len(rows))
	for path := range rows {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, rows[path], sourceOf(summary.Sources, path))
	}

	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("flush summary: %w", err)
	}
	return buf.String(), nil
}

// flattenOptions maps dotted resolved paths to their rendered values.
func flattenOptions(opts TransformOptions) (map[string]string, error) {
	encoded, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(encoded, &tree); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	rows := map[string]string{}
	var walk func(prefix string, value any)
	walk = func(prefix string, value any) {
		switch v := value.(type) {
		case map[string]any:
			for key, child := range v {
				walk(joinPath(prefix, key), child)
			}
		case nil:
			rows[prefix] = "-"
		default:
			rows[prefix] = fmt.Sprint(v)
		}
	}
	walk("", tree)
	return rows, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// sourceOf finds the layer source of a resolved path by the longest external
// path prefix recorded during merging.
func sourceOf(sources map[string]ValueSource, resolvedPath string) ValueSource {
	path := resolvedPath
	if rest, ok := strings.CutPrefix(path, "jsx."); ok {
		path = "react." + rest
	}
	for path != "" {
		if source, ok := sources[path]; ok {
			return source
		}
		idx := strings.LastIndex(path, ".")
		if idx < 0 {
			break
		}
		path = path[:idx]
	}
	return ValueSourceDefault
}

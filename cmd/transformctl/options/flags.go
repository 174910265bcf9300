package options

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	transform "github.com/dobrovols/transformctl/pkg/options"
)

const (
	flagConfig                  = "config"
	flagOutput                  = "output"
	flagCwd                     = "cwd"
	flagSourcemap               = "sourcemap"
	flagJSXRuntime              = "jsx-runtime"
	flagRewriteImportExtensions = "rewrite-import-extensions"
	flagRefresh                 = "refresh"
	flagStrict                  = "strict"
	flagVerbose                 = "verbose"
)

const outputAuto = "auto"

var errUnsupportedOutput = errors.New("unsupported output format")

// ErrUnsupportedOutput exposes the sentinel.
func ErrUnsupportedOutput() error { return errUnsupportedOutput }

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, flagOutput, outputAuto, "Output format: auto, text, json or yaml")
}

// resolveOutputFormat maps --output onto a summary format. auto renders text
// for terminals and json otherwise.
func resolveOutputFormat(output string, w io.Writer, isTerminal func(io.Writer) bool) (string, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", outputAuto:
		if isTerminal != nil && isTerminal(w) {
			return transform.SummaryFormatText, nil
		}
		return transform.SummaryFormatJSON, nil
	case transform.SummaryFormatText:
		return transform.SummaryFormatText, nil
	case transform.SummaryFormatJSON:
		return transform.SummaryFormatJSON, nil
	case transform.SummaryFormatYAML:
		return transform.SummaryFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", errUnsupportedOutput, output)
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// runtimeLayer builds an external configuration from the option flags the
// user actually set. Unchanged flags stay absent so they never mask the file layer.
func runtimeLayer(flags *pflag.FlagSet) (transform.ExternalConfig, error) {
	var (
		external transform.ExternalConfig
		firstErr error
	)
	react := func() *transform.ExternalJSX {
		if external.React == nil {
			external.React = &transform.ExternalJSX{}
		}
		return external.React
	}

	flags.Visit(func(flag *pflag.Flag) {
		if firstErr != nil {
			return
		}
		switch flag.Name {
		case flagCwd:
			value := flag.Value.String()
			external.Cwd = &value
		case flagSourcemap:
			value, err := flags.GetBool(flag.Name)
			if err != nil {
				firstErr = err
				return
			}
			external.Sourcemap = &value
		case flagJSXRuntime:
			value := flag.Value.String()
			react().Runtime = &value
		case flagRewriteImportExtensions:
			value := rewriteFlagValue(flag.Value.String())
			external.TypeScript = &transform.ExternalTypeScript{RewriteImportExtensions: &value}
		case flagRefresh:
			value, err := flags.GetBool(flag.Name)
			if err != nil {
				firstErr = err
				return
			}
			refresh := transform.EitherA[bool, transform.ExternalReactRefresh](value)
			react().Refresh = &refresh
		}
	})
	if firstErr != nil {
		return transform.ExternalConfig{}, fmt.Errorf("read runtime flags: %w", firstErr)
	}
	return external, nil
}

// rewriteFlagValue keeps the boolean and string spellings distinct, as a
// configuration document would.
func rewriteFlagValue(raw string) transform.Either[bool, string] {
	switch raw {
	case "true":
		return transform.EitherA[bool, string](true)
	case "false":
		return transform.EitherA[bool, string](false)
	default:
		return transform.EitherB[bool](raw)
	}
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: onemath <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render notebook pages to HTML with MathML")
	fmt.Fprintln(w, "  styles     List built-in styles")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'onemath help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: onemath render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown pages (.md, .markdown) and equation segment lists")
	fmt.Fprintln(w, "(.yaml, .yml) to standalone HTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-page timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --title <s>           Page title (default: first heading or file name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Style name or .css file (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory holding styles/<name>.css")
	fmt.Fprintln(w, "      --no-style            Render without a style sheet")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug details and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ONEMATH_CONFIG, ONEMATH_STYLE, ONEMATH_ASSET_PATH, ONEMATH_TIMEOUT,")
	fmt.Fprintln(w, "  ONEMATH_INPUT_DIR, ONEMATH_OUTPUT_DIR, ONEMATH_WORKERS, ONEMATH_LOG_LEVEL")
}

func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: onemath styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in styles. The default style is marked with *.")
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: onemath config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after merging ONEMATH_* variables.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "styles":
		printStylesUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: onemath version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: onemath help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manualpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert manuals and their screenshots to PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'manualpdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: manualpdf convert <manual.md|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown manuals to paginated PDF. Image references are matched")
	fmt.Fprintln(w, "to screenshots by file name. A manual without image references gets its")
	fmt.Fprintln(w, "screenshots inserted by number: 02-01_dialog.png goes under \"### 2.1\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory of manuals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -i, --images <dir>        Screenshot directory (default: manual's directory)")
	fmt.Fprintln(w, "      --logo <path>         Header logo (default: logo.* beside the manual)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-manual timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --title <s>           Document title (default: file name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pagination:")
	fmt.Fprintln(w, "      --mode <s>            height (default) or heading")
	fmt.Fprintln(w, "      --budget <f>          Page height budget in CSS pixels")
	fmt.Fprintln(w, "      --break-before <s>    Headings that start a page: h1,h2,h3 (default: h2)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Screenshots:")
	fmt.Fprintln(w, "      --no-autolink         Never insert screenshot references")
	fmt.Fprintln(w, "      --require-images      Fail when no screenshot is found")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MANUALPDF_CONFIG, MANUALPDF_TIMEOUT, MANUALPDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  MANUALPDF_IMAGES_DIR, MANUALPDF_LOGO, MANUALPDF_WORKERS,")
	fmt.Fprintln(w, "  MANUALPDF_LOG_LEVEL, MANUALPDF_STYLE, MANUALPDF_OUTPUT_DIR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: manualpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: manualpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

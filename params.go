package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/novatok/qrhub-contract-tests/config"
	"github.com/novatok/qrhub-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configPath string
	overrides  config.Flags
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	noColor    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "path of a YAML configuration file")
	fs.StringVar(&c.overrides.BaseURL, "url", "", "base URL of the QR Hub service")
	fs.StringVar(&c.overrides.APIPath, "api-path", "", "path of the API relative to the base URL")
	fs.DurationVar(&c.overrides.RequestTimeout, "timeout", 0, "timeout for each request")
	fs.StringVar(&c.overrides.LogLevel, "log-level", "", "runner log level (debug, info, warn, error)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	return true
}

// rerunCommand is a command line that runs only the named tests with the same settings.
func (c *commandParams) rerunCommand(program string, names []string) string {
	var b commandBuilder
	b.add(program)
	if c.configPath != "" {
		b.add("-config", c.configPath)
	}
	if c.overrides.BaseURL != "" {
		b.add("-url", c.overrides.BaseURL)
	}
	if c.overrides.APIPath != "" {
		b.add("-api-path", c.overrides.APIPath)
	}
	if c.overrides.RequestTimeout > 0 {
		b.add("-timeout", c.overrides.RequestTimeout.String())
	}
	b.add("-run", framework.ExactNamesPattern(names))
	if c.debug || c.debugAll {
		b.add("-debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

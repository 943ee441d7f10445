package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-onemath/internal/assets"
	"github.com/alnah/go-onemath/internal/yamlutil"
)

// runStyles lists the built-in styles, marking the default one.
func runStyles(args []string, env *Environment) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printStylesUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	for _, name := range env.Styles() {
		marker := " "
		if name == assets.DefaultStyleName {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", marker, name)
	}
	return nil
}

// runConfig prints the effective configuration: the config file merged
// with ONEMATH_* variables.
func runConfig(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var name string
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	cfg, err := loadConfig(name, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}

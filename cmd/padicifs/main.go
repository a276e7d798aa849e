package main

import (
	"os"

	"github.com/projectdiscovery/gologger"

	padicifs "github.com/padic-tools/padicifs"
	"github.com/padic-tools/padicifs/internal/runner"
)

func main() {
	cliOpts := runner.ParseFlags()

	cfgFile, err := os.Open(cliOpts.ConfigFile)
	if err != nil {
		gologger.Fatal().Msgf("failed to open config file %v got %v", cliOpts.ConfigFile, err)
	}
	defer cfgFile.Close()

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)

	pl, err := padicifs.New(&padicifs.Options{
		ConfigPath:        cliOpts.ConfigFile,
		DirectiveOverride: cliOpts.Directive,
		ExplorationCap:    cliOpts.ExplorationCap,
		Output:            output,
	}, cfgFile)
	if err != nil {
		gologger.Fatal().Msgf("failed to parse %v got: %v", cliOpts.ConfigFile, err)
	}

	if err := pl.Run(); err != nil {
		gologger.Fatal().Msgf("padicifs: %v", err)
	}
}

func getOutputWriter(outputPath string) *os.File {
	if outputPath != "" {
		fs, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file %v got %v", outputPath, err)
		}
		return fs
	}
	return os.Stdout
}

func closeOutput(output *os.File, outputPath string) {
	if outputPath != "" {
		output.Close()
	}
}

package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	updateutils "github.com/projectdiscovery/utils/update"
)

// Options are the padicifs CLI's parsed flags.
type Options struct {
	ConfigFile         string
	Directive          string
	ExplorationCap     int
	Output             string
	DisableUpdateCheck bool
	Verbose            bool
	Silent             bool
}

// ParseFlags parses os.Args into Options, showing the banner and running
// the update check exactly as the teacher's ParseFlags does.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`p-adic IFS transducer toolkit: builds and renders transducers, DFAs and Hausdorff dimensions from a line-delimited IFS configuration.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.ConfigFile, "config", "c", "", "IFS configuration file (p, directive, map expressions)"),
		flagSet.StringVarP(&opts.Directive, "directive", "d", "", "override the directive on line 2 of the config file"),
		flagSet.IntVarP(&opts.ExplorationCap, "cap", "ec", 0, "transducer exploration cap (default: ifs.DefaultExplorationCap)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write the rendered artifact (default stdout)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display padicifs version"),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update padicifs to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic padicifs update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("padicifs")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("padicifs version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current padicifs version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	if opts.ConfigFile == "" {
		gologger.Fatal().Msgf("padicifs: no configuration file given (-config)")
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/nevisdale/boii/internal/bus"
	"github.com/nevisdale/boii/internal/cart"
	"github.com/nevisdale/boii/internal/config"
	"github.com/nevisdale/boii/internal/memview"
	"github.com/nevisdale/boii/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process around it. It returns the exit code:
// 0 on success, 1 when the rom or the config can't be used, 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)

	fs := flag.NewFlagSet("boii", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: boii [flags] <ROM-FILE>\n")
		fs.PrintDefaults()
	}
	var (
		configPath  = fs.String("config", "", "path to a yaml config file")
		checkSize   = fs.Bool("check-rom-size", true, "check the rom size against the header")
		checkLogo   = fs.Bool("check-logo", true, "check the nintendo logo")
		checkHeader = fs.Bool("check-header-checksum", true, "check the header checksum")
		checkGlobal = fs.Bool("check-global-checksum", false, "check the global checksum")
		view        = fs.Bool("view", false, "open the memory viewer")
		dump        = fs.Int("dump", 0, "print this many rows of memory from the viewer start address")
		profileDir  = fs.String("profile", "", "write a cpu profile to this directory")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	romPath := fs.Arg(0)

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.NoShutdownHook).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("couldn't load config: %s\n", err)
		return 1
	}
	// flags win over the config file, but only when given explicitly
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "check-rom-size":
			cfg.Validation.CheckROMSize = *checkSize
		case "check-logo":
			cfg.Validation.CheckNintendoLogo = *checkLogo
		case "check-header-checksum":
			cfg.Validation.CheckHeaderChecksum = *checkHeader
		case "check-global-checksum":
			cfg.Validation.CheckGlobalChecksum = *checkGlobal
		}
	})

	c, err := cart.NewCartFromFile(romPath, cfg.Validation)
	if err != nil {
		logger.Printf("couldn't load rom %s: %s\n", romPath, err)
		reportValidation(logger, romPath, cfg.Validation)
		return 1
	}

	fmt.Fprint(stdout, memview.HeaderInfo(c.Header()))

	if *dump > 0 {
		if err := memview.Dump(stdout, bus.New(c), cfg.Viewer.StartAddr, *dump); err != nil {
			logger.Printf("couldn't dump memory: %s\n", err)
			return 1
		}
	}

	if *view {
		if err := ui.Run(ui.New(c, cfg.Viewer)); err != nil {
			logger.Printf("viewer: %s\n", err)
			return 1
		}
	}
	return 0
}

// reportValidation lists every failed check, not only the one that stopped the load.
func reportValidation(logger *log.Logger, romPath string, settings cart.ValidationSettings) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return
	}
	header, err := cart.ParseHeader(rom)
	if err != nil {
		return
	}
	errs := cart.ValidateAll(rom, header, settings)
	if len(errs) < 2 {
		return
	}
	logger.Printf("%d checks failed:\n", len(errs))
	for _, err := range errs {
		logger.Printf("- %s\n", err)
		if errors.Is(err, cart.ErrMissingNintendoLogo) {
			logger.Println("  the image is probably not a game boy rom")
		}
	}
}

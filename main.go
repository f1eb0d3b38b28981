// Command folio opens the desktop preview of the portfolio animations.
//
// Usage:
//
//	folio [flags]
//
// Flags:
//
//	--verbose            Enable logging
//	--particles <path>   Particle presets YAML (defaults to the built-in set; "default" is applied at start)
//	--section <id>       Section selected at start (header, about, skills, projects, contact)
//	--app-name <name>    Directory name used for saved animation settings
//	--theme <name>       Card color theme
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/folio/pkg/app"
	"github.com/gonewx/folio/pkg/config"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	particlesFlag = flag.String("particles", "", "Particle presets YAML file")
	sectionFlag   = flag.String("section", "", "Section selected at start")
	appNameFlag   = flag.String("app-name", app.DefaultAppName, "Directory name for saved settings")
	themeFlag     = flag.String("theme", config.DefaultTheme, "Card color theme")
)

func main() {
	flag.Parse()

	a, err := app.NewApp(app.Config{
		Verbose:        *verboseFlag,
		ParticlesPath:  *particlesFlag,
		BuiltinPresets: builtinPresets,
		Section:        *sectionFlag,
		AppName:        *appNameFlag,
		Theme:          *themeFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Folio - Animation Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "folio: save settings: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", runErr)
		os.Exit(1)
	}
}

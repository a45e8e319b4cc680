package tui

import (
	"fmt"

	"transmap/pkg/config"

	"github.com/charmbracelet/huh"
)

// RunConfigTUI edits the persisted settings interactively.
func RunConfigTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backendURL := cfg.BackendURL
	homeStop := cfg.HomeStopID
	homeLabel := cfg.HomeLabel
	accent := cfg.AccentColor
	if accent == "" {
		accent = "39"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Leave empty for http://localhost:8000").
				Value(&backendURL),

			huh.NewInput().
				Title("Home stop ID").
				Value(&homeStop),

			huh.NewInput().
				Title("Home stop label").
				Value(&homeLabel),

			huh.NewInput().
				Title("Accent color").
				Description("ANSI 256 color code, e.g. 39 or 99").
				Value(&accent),
		),
	).WithTheme(GetCustomTheme(accent))

	if err := form.Run(); err != nil {
		return err
	}

	cfg.BackendURL = backendURL
	cfg.HomeStopID = homeStop
	cfg.HomeLabel = homeLabel
	cfg.AccentColor = accent

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("Settings saved."))
	return nil
}

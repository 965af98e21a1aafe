package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobtrack/internal/client/storage"
)

func (a *App) loadTheme(ctx context.Context) {
	value, err := a.store.Get(ctx, storage.KeyDarkMode)
	if err != nil {
		a.log.Warn(ctx, "failed to load theme preference", "error", err)
		return
	}
	a.darkMode = string(value) == "true"
}

// Theme toggles the persisted dark/light preference. Unrelated to the
// auth keys; this is the only place that writes it.
func (a *App) Theme(ctx context.Context) error {
	a.darkMode = !a.darkMode
	value := "false"
	name := "light"
	if a.darkMode {
		value = "true"
		name = "dark"
	}
	if err := a.store.Set(ctx, storage.KeyDarkMode, []byte(value)); err != nil {
		fmt.Fprintf(a.out, "Failed to save theme: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", name)
	return nil
}

package main

import (
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/render"
	"github.com/spf13/cobra"
)

func newThemeCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the colour theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()

			var theme domain.Theme
			var err error
			switch {
			case len(args) == 0:
				theme, err = a.themes.Get(ctx)
			case args[0] == "toggle":
				theme, err = a.themes.Toggle(ctx)
			default:
				theme, err = domain.ParseTheme(args[0])
				if err == nil {
					err = a.themes.Set(ctx, theme)
				}
			}
			if err != nil {
				return err
			}
			a.theme = render.ThemeFor(theme)
			a.println(a.theme.Title.Render("Theme: " + string(theme)))
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
	"github.com/s9b/memenem/internal/service"
	"github.com/spf13/cobra"
)

// collectionCmd groups the saved-collection commands.
func newCollectionCmd(get func() *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"saved"},
		Short:   "Manage your saved memes",
		Long: `Manage the memes saved on this machine.

Available subcommands:
  list   - List saved memes
  search - Search captions, template names and styles
  save   - Save a trending meme or a meme from JSON
  remove - Remove one or more memes
  clear  - Remove every saved meme
  stats  - Show collection statistics`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved memes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCollection(cmd, get(), opts, "")
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search saved memes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCollection(cmd, get(), opts, args[0])
			},
		},
		newCollectionSaveCmd(get),
		newCollectionRemoveCmd(get),
		newCollectionClearCmd(get),
		&cobra.Command{
			Use:   "stats",
			Short: "Show collection statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := get()
				stats, err := a.collection.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return a.printJSON(stats)
				}
				a.println(a.theme.Stats(stats))
				return nil
			},
		},
	)
	return cmd
}

func listCollection(cmd *cobra.Command, a *app, opts *options, query string) error {
	all, err := a.collection.List(cmd.Context())
	if err != nil {
		return err
	}
	memes := service.FilterMemes(all, query)
	if opts.jsonOutput {
		return a.printJSON(memes)
	}

	empty := "No saved memes yet. Save some with 'memenem generate --save'."
	if query != "" && len(all) > 0 {
		empty = fmt.Sprintf("No memes match %q.", query)
	}
	a.println(a.theme.MemeList(memes, empty, a.now()))
	if len(memes) > 0 {
		a.println(a.theme.Faint.Render(fmt.Sprintf("%d of %d saved memes", len(memes), len(all))))
	}
	return nil
}

func newCollectionSaveCmd(get func() *app) *cobra.Command {
	var fromJSON string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "save [meme-id]",
		Short: "Save a meme to the collection",
		Long: `Saves a meme by id, looking it up among the trending memes, or saves
the meme JSON read from --json (use - for stdin).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var meme domain.Meme
			switch {
			case fromJSON != "":
				m, err := readMemeJSON(cmd, fromJSON)
				if err != nil {
					return err
				}
				meme = *m
			case len(args) == 1:
				m, err := findTrending(cmd, a, args[0], searchLimit)
				if err != nil {
					return err
				}
				meme = *m
			default:
				return fmt.Errorf("give a meme id or --json")
			}
			if meme.ID == "" {
				return fmt.Errorf("meme has no meme_id")
			}

			added, err := a.collection.Save(cmd.Context(), meme)
			if err != nil {
				return err
			}
			if !added {
				a.println(a.theme.Faint.Render("Already in your collection."))
				return nil
			}
			a.println(a.theme.Success.Render("Saved " + meme.ID + "."))
			return nil
		},
	}
	cmd.Flags().StringVar(&fromJSON, "json", "", "read the meme from a JSON file, or - for stdin")
	cmd.Flags().IntVar(&searchLimit, "search-limit", 100, "how many trending memes to search for the id")
	return cmd
}

func readMemeJSON(cmd *cobra.Command, path string) (*domain.Meme, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	var meme domain.Meme
	if err := json.NewDecoder(r).Decode(&meme); err != nil {
		return nil, fmt.Errorf("failed to decode meme: %w", err)
	}
	return &meme, nil
}

func findTrending(cmd *cobra.Command, a *app, id string, limit int) (*domain.Meme, error) {
	memes, err := a.memes.Trending(cmd.Context(), limit, domain.SortByTimestamp)
	if err != nil {
		return nil, err
	}
	for i := range memes {
		if memes[i].ID == id {
			return &memes[i], nil
		}
	}
	return nil, fmt.Errorf("meme %s not found among the %d latest memes", id, limit)
}

func newCollectionRemoveCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <meme-id>...",
		Aliases: []string{"rm"},
		Short:   "Remove memes from the collection",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if len(args) == 1 {
				removed, err := a.collection.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%s: %w", args[0], service.ErrMemeNotSaved)
				}
				a.println("Removed " + args[0] + ".")
				return nil
			}
			n, err := a.collection.RemoveMany(cmd.Context(), args)
			if err != nil {
				return err
			}
			a.printf("Removed %d of %d memes.\n", n, len(args))
			return nil
		},
	}
}

func newCollectionClearCmd(get func() *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved meme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if !yes {
				return fmt.Errorf("refusing to clear the collection without --yes")
			}
			if err := a.collection.Clear(cmd.Context()); err != nil {
				return err
			}
			a.println("Collection cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing")
	return cmd
}

func newShareCmd(get func() *app) *cobra.Command {
	var platform string
	var hashtags []string

	cmd := &cobra.Command{
		Use:   "share <meme-id>",
		Short: "Print a share link for a saved meme",
		Long: `Prints the share link for twitter or linkedin. Instagram has no share
link, so the text to paste is printed instead; so does --platform copy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			meme, err := a.collection.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p, copyOnly, err := parsePlatform(platform)
			if err != nil {
				return err
			}

			fullURL := format.ResolveImageURL(a.api.BaseURL(), meme.ImageURL)
			switch {
			case copyOnly:
				a.println(format.ClipboardText(meme.Caption, fullURL))
			case p == domain.PlatformInstagram:
				a.println(format.ClipboardText(meme.Caption, fullURL))
				a.println("")
				a.println(a.theme.Faint.Render("Paste the text above on " + format.ShareURL(p, fullURL, "", nil)))
			default:
				var tags []string
				if cmd.Flags().Changed("hashtag") {
					tags = hashtags
				}
				a.println(format.ShareURL(p, fullURL, format.ShareText(meme.Caption), tags))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&platform, "platform", "p", string(domain.PlatformTwitter), "twitter, instagram, linkedin or copy")
	cmd.Flags().StringSliceVar(&hashtags, "hashtag", nil, "hashtags for twitter (default meme,funny,viral)")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
	"github.com/spf13/cobra"
)

func newGenerateCmd(get func() *app, opts *options) *cobra.Command {
	var topic, style, templateID string
	var save bool

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a meme for a topic",
		Long: `Asks the backend to write a caption for a topic in a humor style and
render it on a template.

Example:
  memenem generate --topic "Monday meetings" --style corporate_irony --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if topic == "" && len(args) == 1 {
				topic = args[0]
			}
			humor, err := domain.ParseHumorStyle(style)
			if err != nil {
				return err
			}

			result, err := a.memes.Generate(cmd.Context(), domain.GenerateMemeRequest{
				Topic:      topic,
				Style:      humor,
				TemplateID: templateID,
			}, save)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(result)
			}

			imageURL := format.ResolveImageURL(a.api.BaseURL(), result.Meme.ImageURL)
			a.println(a.theme.MemeCard(result.Meme, imageURL, result.Saved, a.now()))
			if result.Saved {
				a.println(a.theme.Success.Render("Saved to your collection."))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "what the meme is about (max 200 characters)")
	cmd.Flags().StringVarP(&style, "style", "s", string(domain.DefaultHumorStyle), "humor style (see 'memenem styles')")
	cmd.Flags().StringVar(&templateID, "template", "", "template id to use instead of letting the backend pick")
	cmd.Flags().BoolVar(&save, "save", false, "save the meme to the local collection")
	return cmd
}

func newTemplatesCmd(get func() *app, opts *options) *cobra.Command {
	var limit int
	var source string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List meme templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			templates, err := a.memes.Templates(cmd.Context(), limit, source)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(templates)
			}
			a.println(a.theme.Templates(templates))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", client.DefaultTemplateLimit, "maximum number of templates")
	cmd.Flags().StringVar(&source, "source", "", "only templates from this source")
	return cmd
}

func newTrendingCmd(get func() *app, opts *options) *cobra.Command {
	var limit, more int
	var sortBy string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending memes",
		Long: `Shows the trending memes sorted by virality score, upvotes or timestamp.
Each --more adds another page of 20.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			sort, err := domain.ParseTrendingSort(sortBy)
			if err != nil {
				return err
			}

			var memes []domain.Meme
			if more > 0 {
				limit += (more - 1) * 20
				_, memes, err = a.memes.LoadMore(cmd.Context(), limit, sort)
			} else {
				memes, err = a.memes.Trending(cmd.Context(), limit, sort)
			}
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(memes)
			}
			a.println(a.theme.MemeList(memes, "No trending memes yet. Generate some!", a.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", client.DefaultTrendingLimit, "number of memes")
	cmd.Flags().StringVar(&sortBy, "sort", string(domain.SortByVirality), "virality_score, upvotes or timestamp")
	cmd.Flags().IntVar(&more, "more", 0, "load this many extra pages")
	return cmd
}

func newUpvoteCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upvote <meme-id>",
		Short: "Upvote a meme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			count, err := a.memes.Upvote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(map[string]interface{}{"meme_id": args[0], "new_upvote_count": count})
			}
			a.printf("▲ %s upvotes\n", format.FormatUpvoteCount(count))
			return nil
		},
	}
}

func newScoreCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score <meme-id>",
		Short: "Show the virality score breakdown of a meme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			resp, err := a.memes.Score(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(resp)
			}
			badge := format.FormatViralityScore(resp.ViralityScore)
			a.printf("%s  %s\n", a.theme.ScoreBadge(resp.ViralityScore), badge.Label)
			if len(resp.Factors) > 0 {
				a.println(a.theme.KeyValues(resp.Factors))
			}
			return nil
		},
	}
}

func newHealthCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			health, err := a.memes.Health(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(health)
			}
			a.println(a.theme.Success.Render("Backend is healthy at " + a.api.BaseURL()))
			a.println(a.theme.KeyValues(health))
			return nil
		},
	}
}

func newStatusCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			status, err := a.memes.Status(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(status)
			}
			a.println(a.theme.KeyValues(status))
			return nil
		},
	}
}

func newStylesCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List humor styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if opts.jsonOutput {
				return a.printJSON(domain.HumorStyles)
			}
			a.println(a.theme.Styles())
			return nil
		},
	}
}

// parsePlatform accepts a social platform name or "copy".
func parsePlatform(s string) (domain.SocialPlatform, bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "copy" {
		return "", true, nil
	}
	for _, p := range domain.SocialPlatforms {
		if string(p) == s {
			return p, false, nil
		}
	}
	return "", false, fmt.Errorf("unknown platform %q: want twitter, instagram, linkedin or copy", s)
}

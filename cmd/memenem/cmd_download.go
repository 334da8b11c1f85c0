package main

import (
	"fmt"

	"github.com/s9b/memenem/internal/format"
	"github.com/spf13/cobra"
)

func newDownloadCmd(get func() *app, opts *options) *cobra.Command {
	var all bool
	var workers int

	cmd := &cobra.Command{
		Use:   "download [meme-id]",
		Short: "Download saved meme images",
		Long: `Downloads the image of a saved meme, or of every saved meme with --all,
to the configured object storage (a local directory by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if all == (len(args) == 1) {
				return fmt.Errorf("give either a meme id or --all")
			}
			dl, err := a.downloader(cmd, workers)
			if err != nil {
				return err
			}

			if !all {
				res, err := dl.DownloadByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return a.printJSON(res)
				}
				dims := ""
				if res.Width > 0 {
					dims = fmt.Sprintf(", %dx%d %s", res.Width, res.Height, res.Format)
				}
				a.printf("Downloaded %s (%s%s)\n", res.URL, format.FormatBytes(res.Size), dims)
				return nil
			}

			stats, err := dl.DownloadAll(cmd.Context())
			if err != nil && stats == nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(stats)
			}
			for _, r := range stats.Results {
				a.println(r.URL)
			}
			a.printf("%d downloaded, %d skipped, %d failed (%s)\n",
				len(stats.Results), stats.SkippedItems, stats.FailedItems, format.FormatBytes(stats.Bytes))
			if stats.FailedItems > 0 {
				return fmt.Errorf("%d downloads failed", stats.FailedItems)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "download every saved meme")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel downloads (default from config)")
	return cmd
}

func newExportCmd(get func() *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the collection as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			dl, err := a.downloader(cmd, 1)
			if err != nil {
				return err
			}
			res, err := dl.ExportCollection(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return a.printJSON(res)
			}
			a.printf("Exported %d memes to %s (%s)\n", res.Count, res.URL, format.FormatBytes(res.Size))
			return nil
		},
	}
}

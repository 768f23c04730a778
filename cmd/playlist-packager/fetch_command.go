package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/playlist-packager/internal/logging"
	"github.com/ytget/playlist-packager/internal/model"
)

type fetchOptions struct {
	mode        string
	quality     string
	format      string
	bitrate     string
	limit       int
	concurrency int
	out         string
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Download a playlist or video and write the ZIP archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("concurrency") {
				opts.concurrency = cfg.DefaultConcurrency
			}

			req, err := buildRequest(args[0], opts)
			if err != nil {
				return err
			}

			logger := logging.NewWithWriter(os.Stderr, cfg.AppEnv, cfg.LogLevel)
			if cfg.LogLevel == "" {
				logger = logger.Level(warnUnlessDebug(cfg.IsDevelopment()))
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.ErrOrStderr()
			result := newPipeline(cfg, logger).Run(runCtx, req, newCLIReporter(out))
			if !result.Status.IsSuccess() {
				return fmt.Errorf("download failed: %s", result.Message)
			}

			if err := os.WriteFile(opts.out, result.Payload, 0o644); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}

			summary := fmt.Sprintf("%d file(s)", result.Files)
			if result.Requested > 0 {
				summary = fmt.Sprintf("%d of %d item(s)", result.Files, result.Requested)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s, %s)\n",
				opts.out, summary, humanize.IBytes(uint64(len(result.Payload))))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", "video", "Download mode: video or audio")
	flags.StringVarP(&opts.quality, "quality", "q", "", `Max resolution in video mode: best, 1080p, 720p, worst (default "best")`)
	flags.StringVarP(&opts.format, "format", "f", "", `Audio format in audio mode: mp3, m4a, wav (default "mp3")`)
	flags.StringVarP(&opts.bitrate, "bitrate", "b", "", `Audio bitrate in audio mode: 128k, 192k, 320k (default "192k")`)
	flags.IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of playlist items, 0 downloads all")
	flags.IntVar(&opts.concurrency, "concurrency", model.DefaultConcurrency, "Concurrent fragment downloads (1 to 10)")
	flags.StringVarP(&opts.out, "out", "o", model.ArchiveFileName, "Where to write the archive")

	return cmd
}

// buildRequest turns the command line into a validated request. Options of
// the other mode are rejected rather than ignored.
func buildRequest(url string, opts fetchOptions) (model.DownloadRequest, error) {
	mode, err := model.ParseMode(opts.mode)
	if err != nil {
		return model.DownloadRequest{}, err
	}

	req := model.DownloadRequest{
		URL:         url,
		Mode:        mode,
		Limit:       opts.limit,
		Concurrency: opts.concurrency,
	}

	switch mode {
	case model.ModeVideo:
		if opts.format != "" || opts.bitrate != "" {
			return model.DownloadRequest{}, fmt.Errorf("%w: --format and --bitrate apply to audio mode only", model.ErrInvalidRequest)
		}
		if opts.quality != "" {
			if req.Quality, err = model.ParseQualityPreset(opts.quality); err != nil {
				return model.DownloadRequest{}, err
			}
		}
	case model.ModeAudio:
		if opts.quality != "" {
			return model.DownloadRequest{}, fmt.Errorf("%w: --quality applies to video mode only", model.ErrInvalidRequest)
		}
		req.AudioFormat = model.AudioFormat(strings.ToLower(opts.format))
		req.AudioBitrate = model.AudioBitrate(strings.ToLower(opts.bitrate))
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return model.DownloadRequest{}, err
	}
	return req, nil
}

package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/roiplayer/pkg/adapters/gocvdecoder"
	"github.com/user/roiplayer/pkg/adapters/logger"
	"github.com/user/roiplayer/pkg/adapters/mp4probe"
)

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show metadata of a video source"),
		ArgsUsage: "<source>",
		Action: func(c *cli.Context) error {
			uri := c.Args().First()
			if uri == "" {
				return cli.Exit(l10n.T("Source argument is required"), 2)
			}
			w := c.App.Writer

			if info, err := mp4probe.ProbeFile(uri); err == nil {
				fmt.Fprintln(w, l10n.F("Container: MP4 (%s, fragmented: %v)", info.Codec, info.Fragmented))
				fmt.Fprintln(w, l10n.F("Frame size: %dx%d", info.Width, info.Height))
				fmt.Fprintln(w, l10n.F("Frames: %d at %.2f fps (%s)", info.FrameCount, info.FPS, info.Duration))
			}

			h, err := gocvdecoder.New(logger.NewNoop()).Open(uri)
			if err != nil {
				return err
			}
			defer h.Close()

			info := h.Info()
			fmt.Fprintln(w, l10n.F("Decoder reports %dx%d, %d frames at %.2f fps", info.Width, info.Height, info.FrameCount, info.FPS))
			if info.Live {
				fmt.Fprintln(w, l10n.T("Live capture device"))
			}
			return nil
		},
	}
}

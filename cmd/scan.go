package cmd

import (
	"fmt"

	"qrlog/internal/capture"

	"github.com/spf13/cobra"
)

var (
	scanStdin       bool
	scanImage       bool
	scanShowHistory bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanStdin, "stdin", false, "follow decoder output on stdin, one payload per line")
	scanCmd.Flags().BoolVar(&scanImage, "image", false, "payloads come from still images; repeats are kept")
	scanCmd.Flags().BoolVar(&scanShowHistory, "history", false, "print the history after each recorded payload")
}

var scanCmd = &cobra.Command{
	Use:   "scan [payload...]",
	Short: "Record payloads decoded by an external QR scanner",
	Example: `  zbarimg --raw -q photo.png | qrlog scan --stdin --image
  qrlog scan "https://example.com"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !scanStdin && len(args) == 0 {
			return fmt.Errorf("nothing to record: pass payloads or --stdin")
		}

		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		panel, err := newPanel(cmd, h)
		if err != nil {
			return err
		}
		defer panel.Close()
		panel.SetActive(scanShowHistory)

		rec := capture.NewRecorder(h, logger)
		record := rec.OnDecode
		if scanImage {
			record = rec.OnImageDecode
		}

		recorded := 0
		for _, p := range args {
			if record(p) {
				recorded++
			}
		}

		if scanStdin {
			var n int
			if scanImage {
				n, err = capture.FollowImages(cmd.Context(), cmd.InOrStdin(), rec)
			} else {
				n, err = capture.Follow(cmd.Context(), cmd.InOrStdin(), rec)
			}
			recorded += n
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded %d scan(s)\n", recorded)
		return nil
	},
}

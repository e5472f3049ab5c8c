package cmd

import (
	"fmt"

	"qrlog/internal/capture"
	"qrlog/internal/generate"

	"github.com/spf13/cobra"
)

var (
	genForm        generate.Form
	genShowHistory bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genForm.Type, "type", "text", "payload type (text, url, tel, sms, email, wifi)")
	f.StringVar(&genForm.Value, "value", "", "text, URL or phone number")
	f.StringVar(&genForm.Number, "number", "", "sms: phone number")
	f.StringVar(&genForm.Message, "message", "", "sms/email: message body")
	f.StringVar(&genForm.Email, "email", "", "email: recipient address")
	f.StringVar(&genForm.Subject, "subject", "", "email: subject")
	f.StringVar(&genForm.SSID, "ssid", "", "wifi: network name")
	f.StringVar(&genForm.Password, "password", "", "wifi: password")
	f.StringVar(&genForm.Encryption, "encryption", generate.EncWPA, "wifi: WPA, WEP or nopass")
	f.BoolVar(&genShowHistory, "history", false, "print the history after recording")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a QR code payload from form fields and record it",
	Example: `  qrlog generate --type url --value example.com
  qrlog generate --type wifi --ssid home --password secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := generate.Encode(genForm)
		if err != nil {
			return err
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
		panel.SetActive(genShowHistory)

		fmt.Fprintln(cmd.OutOrStdout(), payload)
		capture.NewRecorder(h, logger).OnEncode(payload)
		return nil
	},
}

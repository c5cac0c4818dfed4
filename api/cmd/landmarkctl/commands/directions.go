package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"landmark-lens/api/internal/i18n"
)

func directionsCmd() *cobra.Command {
	var to, from, lang string
	cmd := &cobra.Command{
		Use:   "directions --to <landmark> --from <address>",
		Short: "Get turn-by-turn directions to a landmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := cfg.DefaultLanguage
			if lang != "" {
				var err error
				if l, err = i18n.Parse(lang); err != nil {
					return err
				}
			}
			d, err := client.GetDirections(cmd.Context(), to, from, l)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", d.Directions, d.MapURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination landmark")
	cmd.Flags().StringVar(&from, "from", "", "starting address")
	cmd.Flags().StringVar(&lang, "lang", "", "answer language: en | id")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"landmark-lens/api/internal/i18n"
	"landmark-lens/api/internal/util"
	"landmark-lens/api/internal/viewstate"
)

type identifyOpts struct {
	lang      string
	from      string
	translate string
}

// identify <image>: run one photo through the full lookup flow.
func identifyCmd() *cobra.Command {
	var o identifyOpts
	cmd := &cobra.Command{
		Use:   "identify <image>",
		Short: "Identify the landmark in a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f := viewstate.File{
				Name:        filepath.Base(args[0]),
				ContentType: util.SniffMimeHTTP(data),
				Data:        data,
				PreviewURI:  args[0],
			}
			return runIdentify(cmd.Context(), cmd.OutOrStdout(), client, logger, f, o)
		},
	}
	cmd.Flags().StringVar(&o.lang, "lang", "", "answer language: en | id (default DEFAULT_LANGUAGE)")
	cmd.Flags().StringVar(&o.from, "from", "", "also get directions from this address")
	cmd.Flags().StringVar(&o.translate, "translate", "", "switch to this language afterwards and fetch again")
	return cmd
}

func runIdentify(ctx context.Context, out io.Writer, rec viewstate.Recognizer, log *zap.Logger, f viewstate.File, o identifyOpts) error {
	lang := i18n.EN
	if cfg != nil {
		lang = cfg.DefaultLanguage
	}
	if o.lang != "" {
		l, err := i18n.Parse(o.lang)
		if err != nil {
			return err
		}
		lang = l
	}
	var translate i18n.Language
	if o.translate != "" {
		l, err := i18n.Parse(o.translate)
		if err != nil {
			return err
		}
		translate = l
	}

	ctrl := viewstate.New(rec, viewstate.WithLanguage(lang), viewstate.WithLogger(log))
	ctrl.Subscribe(func(s viewstate.Snapshot) { printTransition(out, s) })

	ctrl.SelectFile(ctx, f)
	if err := failed(ctrl); err != nil {
		return err
	}

	if o.from != "" {
		ctrl.ShowDirectionsForm()
		ctrl.SubmitDirections(ctx, o.from)
		if ctrl.Directions().Info == nil {
			fmt.Fprintln(out, "! "+ctrl.Text().Error.Directions)
		}
	}
	if translate != "" {
		ctrl.SetLanguage(ctx, translate)
		if err := failed(ctrl); err != nil {
			return err
		}
	}

	printSummary(out, ctrl.Snapshot())
	return nil
}

func failed(ctrl *viewstate.Controller) error {
	if f, ok := ctrl.State().(viewstate.Failure); ok {
		return errors.New(f.Message)
	}
	return nil
}

func printTransition(out io.Writer, s viewstate.Snapshot) {
	switch st := s.State.(type) {
	case viewstate.Loading:
		fmt.Fprintf(out, "[%s] %s\n", st.Phase(), st.Message)
	case viewstate.Failure:
		fmt.Fprintf(out, "[%s] %s\n", st.Phase(), st.Message)
	case viewstate.Result:
		if s.Translating {
			fmt.Fprintf(out, "[%s] %s\n", st.Phase(), i18n.For(s.Language).Loading.Translating)
		} else if s.Directions.Loading {
			fmt.Fprintf(out, "[%s] %s\n", st.Phase(), i18n.For(s.Language).Loading.Directions)
		}
	}
}

func printSummary(out io.Writer, s viewstate.Snapshot) {
	res, ok := s.State.(viewstate.Result)
	if !ok {
		return
	}
	t := i18n.For(s.Language)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n%s:\n%s\n", res.Landmark.Name, t.HistoryTitle, res.Landmark.History)
	if len(res.Landmark.Sources) > 0 {
		fmt.Fprintf(&b, "\n%s:\n", t.SourcesTitle)
		for _, src := range res.Landmark.Sources {
			fmt.Fprintf(&b, "  - %s <%s>\n", src.Title, src.URI)
		}
	}
	if d := s.Directions.Info; d != nil {
		fmt.Fprintf(&b, "\n%s:\n%s\n%s\n", t.DirectionsTitle, d.Directions, d.MapURL)
	}
	_, _ = io.WriteString(out, b.String())
}

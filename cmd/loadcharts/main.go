// Command loadcharts renders the load-test results dashboard to a PNG.
//
//	loadcharts                      # writes docs/v1-charts.png
//	loadcharts --variant breakpoint -o docs/v1-breakpoint.png
//	loadcharts config               # prints the effective configuration
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iafilius/loadtestcharts/src/config"
	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/layout"
	"github.com/iafilius/loadtestcharts/src/logging"
)

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{v: config.New()}
	root := &cobra.Command{
		Use:           "loadcharts",
		Short:         "Render load-test results into a dashboard PNG",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.SetLogLevel(cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.render(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Saved: %s\n", path)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML config file")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = stdout.Write(out)
			return err
		},
	})
	return root
}

// render runs the pipeline: dataset, theme, figure, file.
func (a *app) render(ctx context.Context) (string, error) {
	v, err := dataset.LookupVariant(a.cfg.Variant)
	if err != nil {
		return "", err
	}
	d, err := dataset.New(v.Spec)
	if err != nil {
		return "", errors.Wrapf(err, "variant %s", v.Name)
	}
	th, err := a.cfg.ResolveTheme()
	if err != nil {
		return "", err
	}
	fig, err := layout.Compose(v, d, th, a.cfg.DPI)
	if err != nil {
		return "", err
	}
	logging.Debugf("rendering %s at %d dpi", v.Name, a.cfg.DPI)
	if err := fig.Save(ctx, a.cfg.Output); err != nil {
		return "", err
	}
	return a.cfg.Output, nil
}

// cmd/coldplot/root.go
package coldplot

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/coldplot/internal/config"
	"github.com/mwiater/coldplot/internal/logging"
	"github.com/mwiater/coldplot/internal/visualize"
)

var runVisualization = visualize.Run

// rootCmd renders one chart for a results directory. Subcommands are
// attached to it to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "coldplot",
	Short: "Plot serverless benchmark latency results",
	Long: `coldplot reads the latencies.csv files of a benchmark results tree and renders
one PNG chart: cold start latency by image size (imgsize), latency by memory and
service time (cpustats), data transfer latency (transfer) or latency CDFs per
burst size (burstiness). The provider is inferred from the path (AWS, vHive).`,
	Example: `  coldplot --type imgsize --path "results/AWS/1536MB memory, st1s imgsize experiment"
  coldplot --type burstiness --path results/vhive/burstiness --output figures`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlot(cmd)
	},
}

// Execute runs the root command and exits with a non-zero status when it
// fails. Cobra has already printed the error at that point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", "config file (e.g., coldplot.yaml)")
	flags.StringP("type", "t", config.Defaults.Type, "visualization type: cpustats, transfer, burstiness or imgsize")
	flags.StringP("path", "p", config.Defaults.Path, "directory holding the experiment results")
	flags.String("provider", "", "provider name; inferred from --path when empty")
	flags.String("memory", "", "allocated memory in MB; inferred from --path when empty")
	flags.String("service-time", "", "service time such as 0ms or 1s; inferred from --path when empty")
	flags.StringP("output", "o", "", "directory for the PNG file; defaults to --path")
	flags.Float64("width", 0, "figure width in inches; 0 keeps the type's default")
	flags.Float64("height", 0, "figure height in inches; 0 keeps the type's default")
	flags.Bool("summary", config.Defaults.Summary, "print a per-run summary table")
	flags.String("log-level", config.Defaults.LogLevel, "log level: debug, info, warn or error")

	flags.VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(f.Name, f)
	})
}

func runPlot(cmd *cobra.Command) error {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	log.Infof("Path is %s and visualization type is %s", cfg.Path, cfg.Type)
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Resolved configuration: %s", pp.Sprint(cfg))
	}

	res, err := runVisualization(visualize.Options{
		Type:        cfg.Type,
		Path:        cfg.Path,
		Provider:    cfg.Provider,
		Memory:      cfg.Memory,
		ServiceTime: cfg.ServiceTime,
		Output:      cfg.Output,
		Width:       vg.Length(cfg.Width) * vg.Inch,
		Height:      vg.Length(cfg.Height) * vg.Inch,
	})
	if err != nil {
		return err
	}

	if cfg.Summary {
		fmt.Fprint(cmd.OutOrStdout(), visualize.SummaryTable(res))
	}
	return nil
}

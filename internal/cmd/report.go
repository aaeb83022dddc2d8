package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ete-kpi/internal/cache"
	"ete-kpi/internal/dto"
	"ete-kpi/internal/kpi"
	"ete-kpi/internal/repository"
	"ete-kpi/internal/service"
)

var (
	reportLine    int
	reportMachine int
	reportShift   int
	reportFrom    string
	reportTo      string
	reportFormat  string
)

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Compute a KPI report",
	Long: `Compute one KPI report and print it.

Kinds: quality, availability, efficiency, dead-time, key-metrics, dashboard.

Dates are calendar days (2006-01-02) or RFC3339 timestamps. A zero id
leaves the dimension unfiltered.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: reportKinds(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := reportRunners[args[0]]; !ok {
			return fmt.Errorf("unknown report %q (want one of %s)", args[0], strings.Join(reportKinds(), ", "))
		}
		f, err := reportFilter(reportLine, reportMachine, reportShift, reportFrom, reportTo)
		if err != nil {
			return err
		}

		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer closeDB(db)

		svc := service.NewService(cfg, repository.NewRepository(db), cache.Noop{}, nil, logger)
		result, err := runReport(cmd.Context(), svc.KPI, args[0], f)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), result, reportFormat)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportLine, "line", 0, "Line id")
	reportCmd.Flags().IntVar(&reportMachine, "machine", 0, "Machine id")
	reportCmd.Flags().IntVar(&reportShift, "shift", 0, "Work shift id")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Start date")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "End date")
	reportCmd.Flags().StringVar(&reportFormat, "format", "yaml", "Output format (yaml|json)")
}

type reportRunner func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error)

var reportRunners = map[string]reportRunner{
	service.ReportQuality: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.Quality(ctx, f)
	},
	service.ReportAvailability: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.Availability(ctx, f)
	},
	service.ReportEfficiency: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.Efficiency(ctx, f)
	},
	service.ReportDeadTime: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.DeadTimeBreakdown(ctx, f)
	},
	service.ReportKeyMetrics: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.KeyMetrics(ctx, f)
	},
	service.ReportDashboard: func(ctx context.Context, svc service.KPIService, f kpi.Filter) (interface{}, error) {
		return svc.Dashboard(ctx, f)
	},
}

func reportKinds() []string {
	kinds := make([]string, 0, len(reportRunners))
	for k := range reportRunners {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func runReport(ctx context.Context, svc service.KPIService, kind string, f kpi.Filter) (interface{}, error) {
	run, ok := reportRunners[kind]
	if !ok {
		return nil, fmt.Errorf("unknown report %q", kind)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return run(ctx, svc, f)
}

// reportFilter builds the engine filter from the command flags.
func reportFilter(line, machine, shift int, from, to string) (kpi.Filter, error) {
	req := dto.KPIFilterRequest{StartDate: from, EndDate: to}
	if line != 0 {
		req.LineID = &line
	}
	if machine != 0 {
		req.MachineID = &machine
	}
	if shift != 0 {
		req.ShiftID = &shift
	}

	f, err := req.ToFilter()
	if err != nil {
		return kpi.Filter{}, err
	}
	return f, f.Validate()
}

func render(w io.Writer, v interface{}, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/seatplan-go/internal/api"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/xlsxio"
	"go.uber.org/zap"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <plan>",
		Short: "Print a plan's tables and seat usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if err := loadPlan(args[0], plan, true, a.log); err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}

func printInfo(w io.Writer, plan *seatplan.Plan) {
	st := plan.Stats()
	guests, tables := plan.Len()
	fmt.Fprintf(w, "Guests: %d entries, %d seats (%d seated)\n", guests, st.TotalGuests, st.SeatedGuests)
	fmt.Fprintf(w, "Tables: %d, capacity %d, occupied %d\n", tables, st.TotalCapacity, st.TotalOccupancy)
	for _, t := range plan.Tables() {
		occ, _ := plan.Occupancy(t.ID)
		fmt.Fprintf(w, "  #%d %s: %d/%d\n", t.ID, t.Name, occ, t.Capacity)
	}
	if unseated := plan.UnseatedGuests(); len(unseated) > 0 {
		fmt.Fprintf(w, "Unseated: %d\n", len(unseated))
		for _, g := range unseated {
			fmt.Fprintf(w, "  #%d %s (%s, %d)\n", g.ID, g.Name, g.Category, g.Size)
		}
	}
}

func (a *app) headersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file.xlsx>",
		Short: "Print the header row of a workbook's active sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := xlsxio.GetHeaders(args[0])
			if err != nil {
				return err
			}
			for _, h := range headers {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}

func (a *app) mergeCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <base> <incoming.xlsx>...",
		Short: "Merge workbooks into a base plan",
		Long: `merge loads the base plan and merges each incoming workbook into it.
Tables and guests whose ids are already taken receive fresh ids, and guests
follow their renumbered tables.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if err := loadPlan(args[0], plan, true, a.log); err != nil {
				return err
			}
			for _, path := range args[1:] {
				if err := loadPlan(path, plan, false, a.log); err != nil {
					return err
				}
				a.log.Info("merged", zap.String("file", path))
			}
			if err := savePlan(plan, output); err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output plan file (.xlsx or .json)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) importGroupsCommand() *cobra.Command {
	var (
		opts   xlsxio.ImportOptions
		into   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "import-groups <source.xlsx>",
		Short: "Add one unseated guest per row of a group list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if into != "" {
				if err := loadPlan(into, plan, true, a.log); err != nil {
					return err
				}
			}

			opts.Logger = a.log
			res, err := xlsxio.ImportGroups(args[0], plan, opts)
			if err != nil {
				var cnf *xlsxio.ColumnNotFoundError
				if errors.As(err, &cnf) {
					return fmt.Errorf("%w (use --group-col, --count-col and --category-col with one of these names)", err)
				}
				return err
			}
			if err := savePlan(plan, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d groups (%d seats), skipped %d rows\n", res.Created, res.Seats, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.GroupColumn, "group-col", "", "Header of the group name column")
	cmd.Flags().StringVar(&opts.CountColumn, "count-col", "", "Header of the party size column")
	cmd.Flags().StringVar(&opts.CategoryColumn, "category-col", "", "Header of the category column (optional)")
	cmd.Flags().StringVar(&into, "into", "", "Existing plan to add the guests to")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output plan file (.xlsx or .json)")
	_ = cmd.MarkFlagRequired("group-col")
	_ = cmd.MarkFlagRequired("count-col")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a plan between .xlsx and .json",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if err := loadPlan(args[0], plan, true, a.log); err != nil {
				return err
			}
			return savePlan(plan, args[1])
		},
	}
}

func (a *app) summaryCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "summary <plan>",
		Short: "Write a guest and table summary report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if err := loadPlan(args[0], plan, true, a.log); err != nil {
				return err
			}
			return xlsxio.WriteSummary(plan, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Report file (.xlsx)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) serveCommand() *cobra.Command {
	var (
		addr     string
		planPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a plan over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := seatplan.New()
			if planPath != "" {
				if err := loadPlan(planPath, plan, true, a.log); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.HTTP.Addr
			}

			srv := api.NewServer(plan, a.log, api.Options{
				DefaultTableCapacity: a.cfg.Plan.DefaultTableCapacity,
				MaxUpload:            a.cfg.HTTP.MaxUpload,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from SEATPLAN_HTTP_ADDR)")
	cmd.Flags().StringVar(&planPath, "plan", "", "Plan file to load at startup")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nano867/prediction-crop/database"
	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/recommend/serviceImp"
	"github.com/Nano867/prediction-crop/pkg/refdata"
	refdataRepoImp "github.com/Nano867/prediction-crop/pkg/refdata/repositoryImp"
)

type globalFlags struct {
	data     string
	tempsCSV string
	db       string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "cropctl",
		Short:         "Rule-based crop recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.data, "data", "", "reference data file (.yaml, .yml, .xlsx)")
	pf.StringVar(&g.tempsCSV, "temps-csv", "", "monthly temperature CSV applied on top")
	pf.StringVar(&g.db, "db", "", "SQLite reference data to load first")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log loading steps to stderr")

	root.AddCommand(
		newRecommendCmd(g),
		newRegionsCmd(g),
		newCropsCmd(g),
		newRulesCmd(g),
		newExportCmd(g),
		newSeedCmd(g),
	)
	return root
}

func (g *globalFlags) logger() *zap.Logger {
	if !g.verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return zap.Must(cfg.Build())
}

// catalog loads defaults, then --db, --data and --temps-csv.
func (g *globalFlags) catalog(cmd *cobra.Command) (*refdata.Catalog, error) {
	opts := refdata.Options{File: g.data, TempsCSV: g.tempsCSV, Logger: g.logger()}
	if g.db != "" {
		db, err := database.OpenSQLite(g.db)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		opts.Store = refdataRepoImp.New(db)
	}
	return refdata.Load(cmd.Context(), opts)
}

func newRecommendCmd(g *globalFlags) *cobra.Command {
	var (
		region string
		month  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend crops for a region and planting month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := g.catalog(cmd)
			if err != nil {
				return err
			}
			rec, err := serviceImp.NewAdvisorService(cat, nil, nil, g.logger()).Recommend(region, month)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rec); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, rec.Summary)
			}
			if !rec.RegionKnown {
				return fmt.Errorf("unknown region %q", region)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&region, "region", "r", "", "region name (case-insensitive)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "planting month 1-12")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full recommendation as JSON")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func newRegionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions and their climate zones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := g.catalog(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "REGION\tZONE")
			for _, r := range cat.Regions() {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Zone)
			}
			return tw.Flush()
		},
	}
}

func newCropsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "crops",
		Short: "List crops with their ideal temperature and planting months",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := g.catalog(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTEMP °C\tWATER\tSOILS\tMONTHS")
			for _, c := range cat.Crops() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.IdealRange(), c.WaterNeed, c.SoilsDisplay(), shortMonths(c))
			}
			return tw.Flush()
		},
	}
}

func shortMonths(c entities.Crop) string {
	names := c.MonthNames()
	for i, n := range names {
		if len(n) > 3 {
			names[i] = n[:3]
		}
	}
	return strings.Join(names, " ")
}

func newRulesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the prediction rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := g.catalog(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), serviceImp.NewAdvisorService(cat, nil, nil, nil).Rules())
			return err
		},
	}
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the effective reference data to a .yaml or .xlsx file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := g.catalog(cmd)
			if err != nil {
				return err
			}
			if err := refdata.WriteFile(out, cat.Dataset()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.yaml, .yml or .xlsx)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newSeedCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the SQLite reference data with the effective catalog",
		Long: `Loads the built-in tables plus --data and --temps-csv and writes the
result into the database named by --db, replacing what is stored there.

When --db is later used as a source, each table it holds (regions, crops,
temperatures) replaces the built-in one instead of being merged with it, so
crops or regions removed from the database stay removed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.db == "" {
				return fmt.Errorf("seed needs --db")
			}
			// Build the catalog without the database so stale rows are not merged back in.
			cat, err := (&globalFlags{data: g.data, tempsCSV: g.tempsCSV, verbose: g.verbose}).catalog(cmd)
			if err != nil {
				return err
			}
			db, err := database.OpenSQLite(g.db)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			ds := cat.Dataset()
			if err := refdataRepoImp.New(db).Replace(ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d regions, %d crops, %d zones\n",
				filepath.Base(g.db), len(ds.Regions), len(ds.Crops), len(ds.Temperatures))
			return nil
		},
	}
}

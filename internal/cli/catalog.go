package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
	"github.com/robalobadob/pinyin-game/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, export, check and seed the pinyin catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the flat catalog",
	Long: `Print the flat catalog in game order: initials, finals, then
whole-syllable readings.

Example:
  pinyin-game catalog list
  pinyin-game catalog list --category final`,
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a YAML or JSON catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogCheck,
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the catalog into a SQLite database",
	Long: `Write the catalog into a SQLite database, replacing what is there.
The source is --catalog-file when given, the built-in tables otherwise.`,
	Args: cobra.NoArgs,
	RunE: runCatalogSeed,
}

func init() {
	catalogListCmd.Flags().String("category", "", "only this category: initial, final, whole-syllable")
	catalogExportCmd.Flags().String("format", "yaml", "output format: yaml or json")
	catalogExportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	catalogSeedCmd.Flags().String("db", "", "SQLite database path (required)")
	_ = catalogSeedCmd.MarkFlagRequired("db")

	catalogCmd.AddCommand(catalogListCmd, catalogExportCmd, catalogCheckCmd, catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	entries := cat.All()
	if c, _ := cmd.Flags().GetString("category"); c != "" {
		category := pinyin.Category(c)
		if !category.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
		entries = cat.Category(category)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDISPLAY\tFILE\tREADING\tCATEGORY")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s (%s)\n", i, e.Display, e.FileKey, e.Reading, e.Category, e.Category.Title())
	}
	return tw.Flush()
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	f, _ := cmd.Flags().GetString("format")
	format, err := store.ParseFormat(f)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	return store.Encode(out, cat, format)
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	cat, err := store.NewFileSource(args[0]).Load(cmd.Context())
	if err != nil {
		return err
	}
	counts := map[pinyin.Category]int{}
	for _, e := range cat.All() {
		counts[e.Category]++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d entries (%d initial, %d final, %d whole-syllable)\n",
		args[0], cat.Len(),
		counts[pinyin.CategoryInitial], counts[pinyin.CategoryFinal], counts[pinyin.CategoryWholeSyllable])
	return nil
}

func runCatalogSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cat := pinyin.Default()
	if cfg.CatalogFile != "" {
		var err error
		if cat, err = store.NewFileSource(cfg.CatalogFile).Load(ctx); err != nil {
			return err
		}
	}

	path, _ := cmd.Flags().GetString("db")
	db, err := store.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	if err := db.Seed(ctx, cat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries into %s\n", cat.Len(), path)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/benyehuda-harvest/internal/catalog"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index and query the local collection",
	Long: `Catalog maintains a SQLite index over the scraped works and authors.
Index rebuilds the database from the record files, search runs a full-text
query over titles and content, and stats prints collection aggregates.`,
}

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the catalog database from record files",
	RunE:  runCatalogIndex,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Full-text search over indexed works",
	RunE:  runCatalogSearch,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print collection statistics",
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.PersistentFlags().String("output-dir", "", "base directory for scraped data")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (default 20)")

	catalogCmd.AddCommand(catalogIndexCmd, catalogSearchCmd, catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	return catalog.NewStore(types.CatalogConfig{
		OutputDir: outputDir(cmd),
	})
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	s, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Index(cmd.Context(), cmd.OutOrStdout())
	return err
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more search terms")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "work_%d  %s (%s)\n    %s\n", r.N, r.Title, r.Authors, r.Snippet)
	}
	return nil
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	s, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}
	sum.Print(cmd.OutOrStdout())
	return nil
}

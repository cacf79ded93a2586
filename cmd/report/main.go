package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mwhitby/kinship/internal/config"
	"github.com/mwhitby/kinship/internal/domain"
	"github.com/mwhitby/kinship/internal/genealogy"
	"github.com/mwhitby/kinship/internal/kinship"
	"github.com/mwhitby/kinship/internal/logging"
	"github.com/mwhitby/kinship/internal/report"
)

func main() {
	var (
		identitiesPath = flag.String("identities", "", "Path to the identity CSV (overrides DATA_IDENTITY_FILE)")
		marriagesPath  = flag.String("marriages", "", "Path to the marriage CSV (overrides DATA_MARRIAGE_FILE)")
		masterPath     = flag.String("master", "", "Path to the master sheet CSV (overrides DATA_MASTER_FILE)")
		outputDir      = flag.String("output-dir", "reports", "Directory to write the report files")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *identitiesPath != "" {
		cfg.Data.IdentityFile = *identitiesPath
	}
	if *marriagesPath != "" {
		cfg.Data.MarriageFile = *marriagesPath
	}
	if *masterPath != "" {
		cfg.Data.MasterFile = *masterPath
	}

	logger := logging.New(cfg.Logging).With("component", "report")

	if err := run(logger, cfg, *outputDir); err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg config.Config, outputDir string) error {
	people, err := loadIdentities(cfg.Data)
	if err != nil {
		return fmt.Errorf("load identities: %w", err)
	}
	marriages, err := loadMarriages(cfg.Data)
	if err != nil {
		return fmt.Errorf("load marriages: %w", err)
	}
	membership, wealth, warnings, err := loadMaster(cfg.Data)
	if err != nil {
		return fmt.Errorf("load master sheet: %w", err)
	}
	logWarnings(logger, "master sheet", warnings)

	parents := make(map[domain.PersonID]kinship.Parentage, len(people))
	for id, p := range people {
		parents[id] = kinship.Parentage{Father: p.FatherID, Mother: p.MotherID}
	}
	graph, err := kinship.BuildGraph(parents, marriages.SpouseSets())
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	logger.Info("kinship network loaded",
		"people", graph.Order(), "edges", graph.EdgeCount())

	dist, _, err := kinship.AllPairsShortestPaths(graph)
	if err != nil {
		return fmt.Errorf("all-pairs distances: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeReport(outputDir, "distances.csv", func(w io.Writer) error {
		return report.WriteDistances(w, dist)
	}); err != nil {
		return err
	}

	stats, warnings := report.HouseholdStats(dist, membership, wealth)
	logWarnings(logger, "household stats", warnings)
	if err := writeReport(outputDir, "household_stats.csv", func(w io.Writer) error {
		return report.WriteHouseholdStats(w, stats)
	}); err != nil {
		return err
	}

	for _, year := range domain.SurveyYears {
		degrees, warnings := report.MemberDegrees(graph, membership, people, report.HeadTable{}, year)
		logWarnings(logger, "member degrees", warnings)
		name := fmt.Sprintf("member_degrees_%d.csv", year)
		if err := writeReport(outputDir, name, func(w io.Writer) error {
			return report.WriteMemberDegrees(w, degrees)
		}); err != nil {
			return err
		}
	}

	cohesion := report.HouseholdCohesion(dist, membership)
	if err := writeReport(outputDir, "household_cohesion.csv", func(w io.Writer) error {
		return report.WriteHouseholdCohesion(w, cohesion)
	}); err != nil {
		return err
	}

	flows := report.MigrationFlows(membership)
	if err := writeReport(outputDir, "migration_flows.csv", func(w io.Writer) error {
		return report.WriteMigrationFlows(w, flows)
	}); err != nil {
		return err
	}

	var deltas []report.HouseholdDelta
	for _, hh := range genealogy.Households(membership) {
		hhDeltas, warnings := report.HouseholdDeltas(membership, people, hh)
		logWarnings(logger, "household changes", warnings)
		deltas = append(deltas, hhDeltas...)
	}
	if err := writeReport(outputDir, "household_changes.txt", func(w io.Writer) error {
		return report.WriteHouseholdDeltas(w, deltas)
	}); err != nil {
		return err
	}

	if err := writeReport(outputDir, "network_summary.txt", func(w io.Writer) error {
		return report.WriteNetworkSummary(w, graph)
	}); err != nil {
		return err
	}

	logger.Info("reports written", "dir", outputDir)
	return nil
}

func loadIdentities(cfg config.DataConfig) (map[domain.PersonID]domain.Person, error) {
	file, err := os.Open(cfg.IdentityFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.IdentityFile, err)
	}
	defer file.Close()
	return genealogy.LoadIdentities(file, cfg.Lenient)
}

func loadMarriages(cfg config.DataConfig) (genealogy.MarriageSet, error) {
	file, err := os.Open(cfg.MarriageFile)
	if err != nil {
		return genealogy.MarriageSet{}, fmt.Errorf("open %s: %w", cfg.MarriageFile, err)
	}
	defer file.Close()
	return genealogy.LoadMarriages(file, cfg.Lenient)
}

func loadMaster(cfg config.DataConfig) (map[domain.PersonID]domain.HouseholdMembership, map[string]map[int]domain.WealthEstimate, []string, error) {
	membershipFile, err := os.Open(cfg.MasterFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s: %w", cfg.MasterFile, err)
	}
	defer membershipFile.Close()

	membership, err := genealogy.LoadHouseholdMembership(membershipFile)
	if err != nil {
		return nil, nil, nil, err
	}

	wealthFile, err := os.Open(cfg.MasterFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s: %w", cfg.MasterFile, err)
	}
	defer wealthFile.Close()

	wealth, warnings, err := genealogy.LoadHouseholdWealth(wealthFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return membership, wealth, warnings, nil
}

func writeReport(dir, name string, write func(io.Writer) error) error {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func logWarnings(logger *slog.Logger, source string, warnings []string) {
	for _, w := range warnings {
		logger.Warn("report warning", "source", source, "detail", w)
	}
}

// Command kushquery loads a catalog manifest, builds a query's
// operator tree, and runs it through the rowexec reference executor,
// printing spec.md §4.9-formatted output to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/exec"
	"github.com/kushdb/kushdb-go/internal/config"
	"github.com/kushdb/kushdb-go/internal/klog"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/rowexec"
	"github.com/kushdb/kushdb-go/runtime"
)

var log = klog.For("kushquery")

func main() {
	var (
		backend     = flag.String("backend", string(config.BackendASM), "translator backend: asm or llvm")
		regAlloc    = flag.String("reg_alloc", string(config.RegAllocStackSpill), "register allocator (asm backend only)")
		skinnerMode = flag.String("skinner", string(config.SkinnerPermute), "adaptive join mode: recompile or permute")
		budget      = flag.Int("budget_per_episode", 10_000, "tuples examined per skinner join episode before reconsidering order")
		manifest    = flag.String("manifest", "", "path to the catalog manifest YAML file")
		table       = flag.String("table", "", "table name to scan and output unfiltered (smoke-test mode)")
	)
	flag.Parse()

	cfg := config.EngineConfig{
		Backend:          config.Backend(*backend),
		RegAlloc:         config.RegAlloc(*regAlloc),
		Skinner:          config.SkinnerMode(*skinnerMode),
		BudgetPerEpisode: *budget,
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid engine configuration")
	}
	log.WithField("backend", cfg.Backend).WithField("skinner", cfg.Skinner).Info("kushquery starting")

	if *manifest == "" || *table == "" {
		fmt.Fprintln(os.Stderr, "usage: kushquery --manifest <path> --table <name> [flags]")
		os.Exit(2)
	}

	if err := run(*manifest, *table, cfg); err != nil {
		log.WithError(err).Fatal("query failed")
	}
}

func run(manifestPath, tableName string, cfg config.EngineConfig) error {
	db, err := catalog.LoadDatabase(manifestPath)
	if err != nil {
		return err
	}
	tbl, ok := db.Table(tableName)
	if !ok {
		return fmt.Errorf("kushquery: no table %q in manifest %s", tableName, manifestPath)
	}

	scan, err := plan.NewScan(tbl)
	if err != nil {
		return err
	}
	out := plan.NewOutput(scan)

	fm := runtime.NewFileManager()
	b, err := exec.NewBuilder(fm, cfg)
	if err != nil {
		return err
	}
	it, err := b.Build(out)
	if err != nil {
		return err
	}
	defer it.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	types := columnTypes(out.Schema())
	for {
		row, err := it.Next()
		if err == rowexec.ErrDone {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, rowexec.FormatRow(types, row))
	}
}

func columnTypes(s *plan.Schema) []catalog.Type {
	types := make([]catalog.Type, s.Len())
	for i, c := range s.Columns() {
		types[i] = c.Type()
	}
	return types
}

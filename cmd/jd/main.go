// Command jd is the CLI front-end for the justification diagram runner.
// Its behaviour is specified only at the boundary (spec §6) — the core
// packages it drives (internal/engine, internal/runtime, internal/reporter)
// carry all of the tested semantics.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jd-lang/jd/internal/config"
	"github.com/jd-lang/jd/internal/engine"
	"github.com/jd-lang/jd/internal/evaluator"
	"github.com/jd-lang/jd/internal/jderr"
	"github.com/jd-lang/jd/internal/model"
	"github.com/jd-lang/jd/internal/reporter"
	"github.com/jd-lang/jd/internal/runtime"
)

var (
	libraries []string
	variables []string
	diagram   string
	dryRun    bool
	check     bool
	verbose   bool
)

func newLogger() *zap.Logger {
	if verbose {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jd [flags] [FILE.jd]",
		Short:   "Run justification diagrams",
		Version: config.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runJD,
	}
	cmd.Flags().StringArrayVarP(&libraries, "library", "l", nil, "procedure library file to load (repeatable)")
	cmd.Flags().StringArrayVarP(&variables, "variable", "v", nil, "bind NAME:VALUE after loading libraries (repeatable)")
	cmd.Flags().StringVarP(&diagram, "diagram", "d", "*", "glob pattern restricting which diagrams run")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "set every node's status to SKIP without calling any procedure")
	cmd.Flags().BoolVar(&check, "check", false, "statically report unresolvable node names, without running anything")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "enable verbose (debug) logging")
	return cmd
}

func runJD(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	manifest, found, err := config.LoadManifest(config.ManifestFileName)
	if err != nil {
		return exitError(err)
	}
	if found {
		log.Debug("loaded project manifest", zap.String("file", config.ManifestFileName))
	}

	var jdFile string
	switch {
	case len(args) == 1:
		jdFile = args[0]
	case found && manifest.Source != "":
		jdFile = manifest.Source
	default:
		return exitError(jderr.Newf(jderr.Syntax,
			"no FILE.jd given and no %q manifest with a source entry found", config.ManifestFileName))
	}
	if found {
		if !cmd.Flags().Changed("library") {
			libraries = manifest.Libraries
		}
		if !cmd.Flags().Changed("variable") {
			variables = manifest.Variables
		}
	}
	log.Debug("loading justification file", zap.String("file", jdFile))

	e, err := engine.New(jdFile)
	if err != nil {
		return exitError(err)
	}

	selected, err := e.Select(diagram)
	if err != nil {
		return exitError(err)
	}
	if len(selected) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no justification diagram found: %s\n", diagram)
		os.Exit(1)
	}

	rt := runtime.New()
	if err := rt.LoadFiles(libraries); err != nil {
		return exitError(err)
	}
	for _, kv := range variables {
		name, value, ok := strings.Cut(kv, ":")
		if !ok {
			return exitError(jderr.Newf(jderr.Syntax, "invalid --variable %q, expected NAME:VALUE", kv))
		}
		if err := rt.SetVariable(name, value); err != nil {
			return exitError(err)
		}
	}

	if check {
		return runCheck(cmd, e, rt, selected)
	}

	rep := reporter.NewTextReporter(cmd.OutOrStdout())

	selectedFail := 0
	for _, name := range selected {
		log.Debug("evaluating diagram", zap.String("diagram", name))
		res, err := e.Justify(name, rt, dryRun)
		if err != nil {
			return exitError(err)
		}
		if err := rep.Report(res); err != nil {
			return err
		}
		if !res.Tally.FullyPassed() {
			selectedFail++
		}
	}

	// Exit code = (number of selected diagrams) - (number that fully
	// passed), per spec §6.
	exitCode := selectedFail
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// runCheck implements the --check flag (SPEC_FULL.md §3 Runtime addition):
// report every EVIDENCE/STRATEGY node whose sanitised name resolves to no
// declared function or variable in any loaded library, without calling
// anything.
func runCheck(cmd *cobra.Command, e *engine.Engine, rt *runtime.Runtime, selected []string) error {
	catalog, err := rt.Catalog()
	if err != nil {
		return exitError(err)
	}
	known := make(map[string]bool)
	for _, names := range catalog {
		for _, n := range names {
			known[n] = true
		}
	}

	unresolved := 0
	for _, name := range selected {
		dag := e.Diagrams[name]
		for _, nodeName := range dag.Nodes() {
			node, _ := dag.Node(nodeName)
			if node.Kind != model.Evidence && node.Kind != model.Strategy {
				continue
			}
			fnName := evaluator.Sanitise(node.Label)
			if !known[fnName] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tunresolved\t%s\n", name, node.Name, fnName)
				unresolved++
			}
		}
	}
	if unresolved > 0 {
		os.Exit(1)
	}
	return nil
}

func exitError(err error) error {
	if k := jderr.KindOf(err); k != "" {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/mattn/go-isatty"
	"github.com/voxelbrain/goptions"

	"github.com/wayneeseguin/nodeselect/internal/config"
	"github.com/wayneeseguin/nodeselect/internal/utils/ansi"
	"github.com/wayneeseguin/nodeselect/internal/utils/fixtures"
	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// Version holds the current version of nodeselect.
var Version = "(development)"

var getopts = func(o interface{}) {
	if err := goptions.Parse(o); err != nil {
		usage()
	}
}

var exit = func(code int) {
	glog.Flush()
	os.Exit(code)
}

var usage = func() {
	goptions.PrintHelp()
	exit(1)
}

type selectOpts struct {
	Graph         string   `goptions:"-g, --graph, obligatory, description='Path to the graph document (nodes + depends_on)'"`
	PreviousState string   `goptions:"--state, description='Path to a previous graph snapshot, required by state: criteria'"`
	Config        string   `goptions:"-c, --config, description='Path to a nodeselect config file'"`
	Select        []string `goptions:"-s, --select, description='Selection criteria (may be specified more than once; unioned)'"`
	Exclude       []string `goptions:"-e, --exclude, description='Exclusion criteria (may be specified more than once; unioned, then subtracted)'"`
	ResourceType  []string `goptions:"--resource-type, description='Restrict output to these resource kinds (default: all)'"`
	Explain       bool     `goptions:"--explain, description='Print the parsed selection group tree to stderr'"`
	Help          bool     `goptions:"-h, --help"`
}

type listOpts struct {
	Graph string `goptions:"-g, --graph, obligatory, description='Path to the graph document'"`
	Help  bool   `goptions:"-h, --help"`
}

type newIdOpts struct {
	Kind    string `goptions:"-k, --kind, obligatory, description='Resource kind key, e.g. model, seed, test'"`
	Package string `goptions:"-p, --package, obligatory, description='Package name to scope the generated id to'"`
	Help    bool   `goptions:"-h, --help"`
}

func main() {
	var options struct {
		Debug   bool   `goptions:"-D, --debug, description='Enable verbose logging'"`
		Version bool   `goptions:"-v, --version, description='Display version information'"`
		Color   string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Action  goptions.Verbs
		Select  selectOpts `goptions:"select"`
		List    listOpts   `goptions:"list"`
		NewId   newIdOpts  `goptions:"new-id"`
	}
	getopts(&options)

	if options.Debug {
		_ = flag.Set("v", "2")
	}

	if options.Select.Help || options.List.Help || options.NewId.Help {
		usage()
		return
	}

	if options.Version {
		fmt.Fprintf(os.Stdout, "%s - Version %s\n", os.Args[0], Version)
		exit(0)
		return
	}

	shouldColor := false
	switch options.Color {
	case "on":
		shouldColor = true
	case "off":
		shouldColor = false
	case "auto", "":
		shouldColor = isatty.IsTerminal(os.Stderr.Fd())
	default:
		fmt.Fprintf(os.Stderr, "invalid --color option: %s. Must be 'on', 'off', or 'auto'.\n", options.Color)
		exit(1)
		return
	}
	ansi.Color(shouldColor)

	switch options.Action {
	case "select":
		runSelect(options.Select)
	case "list":
		runList(options.List)
	case "new-id":
		runNewId(options.NewId)
	default:
		usage()
		return
	}
	exit(0)
}

func runSelect(opts selectOpts) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		manager := config.NewManager()
		if err := manager.Load(opts.Config); err != nil {
			glog.Errorf("loading config %s: %v", opts.Config, err)
			fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{Error loading config}: %s", err.Error()))
			exit(2)
			return
		}
		cfg = manager.Get()
	}
	if opts.PreviousState != "" {
		cfg.Selection.PreviousStateFile = opts.PreviousState
	}
	if len(opts.ResourceType) > 0 {
		cfg.Selection.DefaultResourceTypes = opts.ResourceType
	}

	nodes, edges, err := loadGraphFile(opts.Graph)
	if err != nil {
		reportError(ansi.Errorf("@R{Error reading graph file} @m{%s}: %s", opts.Graph, err.Error()))
		return
	}

	defaultIndirect := cfg.ToDefaultIndirectSelection()
	ns, err := buildWithPreviousState(cfg.Selection.PreviousStateFile, nodes, edges, defaultIndirect)
	if err != nil {
		reportError(err)
		return
	}

	filter, err := cfg.ToResourceTypeFilter()
	if err != nil {
		reportError(err)
		return
	}

	group, err := selector.BuildSelectionExpression(opts.Select, opts.Exclude, defaultIndirect)
	if err != nil {
		reportError(err)
		return
	}

	if opts.Explain {
		explainGroup(os.Stderr, group, 0)
	}

	ids, err := ns.SelectGroupType(group, filter)
	if err != nil {
		reportError(err)
		return
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintln(os.Stdout, string(id))
	}
}

// runNewId scaffolds a synthetic unique_id for hand-written fixture graphs,
// the CLI-facing counterpart of fixtures.NewUniqueId used by Go tests.
func runNewId(opts newIdOpts) {
	if _, ok := selector.NodeKindFromKey(opts.Kind); !ok {
		reportError(selector.NoMatchingResourceTypeError{Value: opts.Kind})
		return
	}
	fmt.Fprintln(os.Stdout, fixtures.NewUniqueId(opts.Kind, opts.Package))
}

func runList(opts listOpts) {
	nodes, _, err := loadGraphFile(opts.Graph)
	if err != nil {
		reportError(ansi.Errorf("@R{Error reading graph file} @m{%s}: %s", opts.Graph, err.Error()))
		return
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].UniqueId < nodes[j].UniqueId })
	for _, n := range nodes {
		fmt.Fprintf(os.Stdout, "%s\t%s\n", n.Kind, n.UniqueId)
	}
}

// reportError type-switches on the selector package's per-variant error
// types to choose an exit code, the way cmd/graft type-switches on
// RootIsArrayError.
func reportError(err error) {
	glog.Errorf("%v", err)
	switch err.(type) {
	case selector.NoNodesForSelectionCriteriaError:
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@Y{%s}", err.Error()))
		exit(1)
	default:
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{%s}", err.Error()))
		exit(2)
	}
}

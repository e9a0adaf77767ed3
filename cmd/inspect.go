package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	query string
}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "evaluate a JSONPath query against the raw document" }
func (*inspectCmd) Usage() string {
	return `inspect -q <jsonpath>

  Evaluates a JSONPath expression against the document file and prints the
  result as JSON. An escape hatch for examining the document without
  opening it in an editor, e.g.:

    sbk inspect -q '$.stock["Album X"]'
    sbk inspect -q '$.history[-1]'
`
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "$", "JSONPath expression to evaluate")
}

func (c *inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, err := app()
	if err != nil {
		return fail(err)
	}

	data, err := os.ReadFile(cfg.DocumentPath)
	if err != nil {
		return fail(err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fail(fmt.Errorf("document %q is not valid JSON: %w", cfg.DocumentPath, err))
	}

	result, err := jsonpath.Get(c.query, doc)
	if err != nil {
		return fail(fmt.Errorf("jsonpath %q: %w", c.query, err))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

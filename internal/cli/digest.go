package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackmove/stackmove/internal/app/refactor"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
)

var digestFlags struct {
	stacks      []string
	provider    string
	account     string
	region      string
	environment string
	opposite    bool
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Compute the content digest of every resource in a stack set",
	RunE:  runDigest,
}

func init() {
	f := digestCmd.Flags()
	f.StringArrayVar(&digestFlags.stacks, "stack", nil, "name=path.yaml, repeatable")
	f.StringVar(&digestFlags.provider, "provider", "", "path to a resource-model provider JSON file")
	f.StringVar(&digestFlags.account, "account", "", "environment account id")
	f.StringVar(&digestFlags.region, "region", "", "environment region")
	f.StringVar(&digestFlags.environment, "environment", "default", "environment name")
	f.BoolVar(&digestFlags.opposite, "opposite", false, "hash over the reversed dependency graph")
}

func runDigest(cmd *cobra.Command, args []string) error {
	env := environmentFromFlags(digestFlags.account, digestFlags.region, digestFlags.environment)
	stacks, err := parseStackFlags(digestFlags.stacks, env)
	if err != nil {
		return err
	}
	provider, err := loadProvider(digestFlags.provider)
	if err != nil {
		return err
	}

	direction := graph.Direct
	if digestFlags.opposite {
		direction = graph.Opposite
	}

	svc := refactor.NewService(refactor.Config{Provider: provider})
	digests := svc.ComputeDigests(cmd.Context(), stacks, direction)

	return printJSON(digests)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

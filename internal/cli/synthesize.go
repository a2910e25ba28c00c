package cli

import (
	"github.com/spf13/cobra"

	"github.com/stackmove/stackmove/internal/app/refactor"
)

var synthesizeFlags struct {
	deployed    []string
	local       []string
	provider    string
	overrides   []string
	account     string
	region      string
	environment string
}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Plan, then synthesize the rewritten stack templates",
	RunE:  runSynthesize,
}

func init() {
	f := synthesizeCmd.Flags()
	f.StringArrayVar(&synthesizeFlags.deployed, "deployed", nil, "name=path.yaml, repeatable")
	f.StringArrayVar(&synthesizeFlags.local, "local", nil, "name=path.yaml, repeatable")
	f.StringVar(&synthesizeFlags.provider, "provider", "", "path to a resource-model provider JSON file")
	f.StringArrayVar(&synthesizeFlags.overrides, "override", nil, "StackName.LogicalId=StackName.LogicalId, repeatable")
	f.StringVar(&synthesizeFlags.account, "account", "", "environment account id")
	f.StringVar(&synthesizeFlags.region, "region", "", "environment region")
	f.StringVar(&synthesizeFlags.environment, "environment", "default", "environment name")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	env := environmentFromFlags(synthesizeFlags.account, synthesizeFlags.region, synthesizeFlags.environment)

	deployed, err := parseStackFlags(synthesizeFlags.deployed, env)
	if err != nil {
		return err
	}
	local, err := parseStackFlags(synthesizeFlags.local, env)
	if err != nil {
		return err
	}
	provider, err := loadProvider(synthesizeFlags.provider)
	if err != nil {
		return err
	}
	overrides, err := parseOverrideFlags(synthesizeFlags.overrides)
	if err != nil {
		return err
	}

	svc := refactor.NewService(refactor.Config{Provider: provider})
	planResult, err := svc.Plan(cmd.Context(), deployed, local, refactor.PlanOptions{Overrides: overrides})
	if err != nil {
		return err
	}

	outputs, err := svc.Synthesize(cmd.Context(), planResult.Mappings, deployed, local)
	if err != nil {
		return err
	}

	type templateEntry struct {
		StackName    string `json:"stackName"`
		TemplateBody string `json:"templateBody"`
	}
	entries := make([]templateEntry, len(outputs))
	for i, o := range outputs {
		entries[i] = templateEntry{StackName: o.StackName, TemplateBody: string(o.TemplateBody)}
	}

	return printJSON(entries)
}

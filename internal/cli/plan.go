package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackmove/stackmove/internal/app/refactor"
	"github.com/stackmove/stackmove/internal/domain/cfn"
)

var planFlags struct {
	deployed            []string
	local               []string
	provider            string
	overrides           []string
	account             string
	region              string
	environment         string
	ignoreModifications bool
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Infer the resource moves between a deployed and a local stack set",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringArrayVar(&planFlags.deployed, "deployed", nil, "name=path.yaml, repeatable")
	f.StringArrayVar(&planFlags.local, "local", nil, "name=path.yaml, repeatable")
	f.StringVar(&planFlags.provider, "provider", "", "path to a resource-model provider JSON file")
	f.StringArrayVar(&planFlags.overrides, "override", nil, "StackName.LogicalId=StackName.LogicalId, repeatable")
	f.StringVar(&planFlags.account, "account", "", "environment account id")
	f.StringVar(&planFlags.region, "region", "", "environment region")
	f.StringVar(&planFlags.environment, "environment", "default", "environment name")
	f.BoolVar(&planFlags.ignoreModifications, "ignore-modifications", false, "suppress the isomorphism check")
}

func runPlan(cmd *cobra.Command, args []string) error {
	env := environmentFromFlags(planFlags.account, planFlags.region, planFlags.environment)

	deployed, err := parseStackFlags(planFlags.deployed, env)
	if err != nil {
		return err
	}
	local, err := parseStackFlags(planFlags.local, env)
	if err != nil {
		return err
	}
	provider, err := loadProvider(planFlags.provider)
	if err != nil {
		return err
	}
	overrides, err := parseOverrideFlags(planFlags.overrides)
	if err != nil {
		return err
	}

	svc := refactor.NewService(refactor.Config{Provider: provider})
	result, err := svc.Plan(cmd.Context(), deployed, local, refactor.PlanOptions{
		Overrides:           overrides,
		IgnoreModifications: planFlags.ignoreModifications,
	})
	if err != nil {
		return err
	}

	return printJSON(result)
}

func parseOverrideFlags(entries []string) ([]cfn.Mapping, error) {
	out := make([]cfn.Mapping, 0, len(entries))
	for _, entry := range entries {
		rawSource, rawDestination, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected source=destination", entry)
		}
		source, ok := cfn.ParseNodeID(rawSource)
		if !ok {
			return nil, cfn.NewInvalidLocationError(rawSource)
		}
		destination, ok := cfn.ParseNodeID(rawDestination)
		if !ok {
			return nil, cfn.NewInvalidLocationError(rawDestination)
		}
		out = append(out, cfn.Mapping{Source: source, Destination: destination})
	}
	return out, nil
}

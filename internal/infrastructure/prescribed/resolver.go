package prescribed

import "github.com/stackmove/stackmove/internal/domain/cfn"

// StaticResolver answers Resolver queries directly from an in-memory
// deployed stack set, for callers (the demo CLI, tests) that already
// have every stack loaded rather than a live API to query.
type StaticResolver struct {
	stacks []cfn.Stack
}

// NewStaticResolver builds a StaticResolver over the given deployed stacks.
func NewStaticResolver(stacks []cfn.Stack) *StaticResolver {
	return &StaticResolver{stacks: stacks}
}

func (r *StaticResolver) stack(env cfn.Environment, stackName string) (*cfn.Stack, bool) {
	for i := range r.stacks {
		st := &r.stacks[i]
		if st.Environment.Equal(env) && st.StackName == stackName {
			return st, true
		}
	}
	return nil, false
}

func (r *StaticResolver) StackExists(env cfn.Environment, stackName string) bool {
	_, ok := r.stack(env, stackName)
	return ok
}

func (r *StaticResolver) ResourceExists(env cfn.Environment, loc cfn.Location) bool {
	st, ok := r.stack(env, loc.StackName)
	if !ok || st.Template == nil {
		return false
	}
	_, exists := st.Template.Resources[loc.LogicalResourceID]
	return exists
}

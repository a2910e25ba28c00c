package cfn

import "fmt"

// RefactorError is the common shape for every error the core surfaces
// (spec §7): a short message plus an optional wrapped cause. Kind-
// specific constructors below attach the structured fields each error
// kind needs.
type RefactorError struct {
	Message string
	Err     error
}

func (e *RefactorError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RefactorError) Unwrap() error { return e.Err }

// ErrGraphNodeMissing is returned by graph operations on an unknown node id.
var ErrGraphNodeMissing = &RefactorError{Message: "graph node missing"}

// NewErrGraphNodeMissing reports a graph operation on an unknown node.
func NewErrGraphNodeMissing(nodeID string) error {
	return &RefactorError{Message: fmt.Sprintf("graph node missing: %s", nodeID), Err: ErrGraphNodeMissing}
}

// ModificationDetectedError reports that the deployed and local digest
// indices are not isomorphic (spec §4.3, §7).
type ModificationDetectedError struct {
	RefactorError
	OnlyInDeployed []Digest
	OnlyInLocal    []Digest
	LostPaths      []string
	AddedPaths     []string
	DeployedStacks []string
	LocalStacks    []string
}

// NewModificationDetectedError builds a ModificationDetectedError.
func NewModificationDetectedError(onlyDeployed, onlyLocal []Digest, lost, added, deployedStacks, localStacks []string) *ModificationDetectedError {
	return &ModificationDetectedError{
		RefactorError:  RefactorError{Message: "modification detected between deployed and local digest indices"},
		OnlyInDeployed: onlyDeployed,
		OnlyInLocal:    onlyLocal,
		LostPaths:      lost,
		AddedPaths:     added,
		DeployedStacks: deployedStacks,
		LocalStacks:    localStacks,
	}
}

// EmptyStackAfterRefactorError reports that a synthesized stack has no
// resources (spec §4.5 step 6, §7).
type EmptyStackAfterRefactorError struct {
	RefactorError
	StackName string
}

func NewEmptyStackAfterRefactorError(stackName string) *EmptyStackAfterRefactorError {
	return &EmptyStackAfterRefactorError{
		RefactorError: RefactorError{Message: fmt.Sprintf("stack %q has no resources after refactor", stackName)},
		StackName:     stackName,
	}
}

// InvalidLocationError reports a prescribed-mapping string not of the
// form "StackName.LogicalId" (spec §6, §7).
type InvalidLocationError struct {
	RefactorError
	Raw string
}

func NewInvalidLocationError(raw string) *InvalidLocationError {
	return &InvalidLocationError{
		RefactorError: RefactorError{Message: fmt.Sprintf("invalid location string: %q", raw)},
		Raw:           raw,
	}
}

// SourceNotFoundError reports a prescribed mapping whose source stack
// or logical id does not exist in the deployed set (spec §6, §7).
type SourceNotFoundError struct {
	RefactorError
	Location    Location
	Environment Environment
}

func NewSourceNotFoundError(loc Location, env Environment) *SourceNotFoundError {
	return &SourceNotFoundError{
		RefactorError: RefactorError{Message: fmt.Sprintf("source not found: %s in %s", loc, env)},
		Location:      loc,
		Environment:   env,
	}
}

// DestinationOccupiedError reports a prescribed mapping whose
// destination logical id is already occupied in the deployed view of
// the destination stack (spec §6, §7).
type DestinationOccupiedError struct {
	RefactorError
	Location    Location
	Environment Environment
}

func NewDestinationOccupiedError(loc Location, env Environment) *DestinationOccupiedError {
	return &DestinationOccupiedError{
		RefactorError: RefactorError{Message: fmt.Sprintf("destination occupied: %s in %s", loc, env)},
		Location:      loc,
		Environment:   env,
	}
}

// DuplicateDestinationError reports two prescribed-mapping source
// entries sharing a destination (spec §6, §7).
type DuplicateDestinationError struct {
	RefactorError
	Location    Location
	Environment Environment
}

func NewDuplicateDestinationError(loc Location, env Environment) *DuplicateDestinationError {
	return &DuplicateDestinationError{
		RefactorError: RefactorError{Message: fmt.Sprintf("duplicate destination: %s in %s", loc, env)},
		Location:      loc,
		Environment:   env,
	}
}

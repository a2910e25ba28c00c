package cfn

import "fmt"

// Location identifies a resource by (stack, logical id). Equality is
// by (stackName, logicalResourceId), not by object identity (spec §3).
type Location struct {
	StackName         string
	LogicalResourceID string
}

// NewLocation builds a Location.
func NewLocation(stackName, logicalID string) Location {
	return Location{StackName: stackName, LogicalResourceID: logicalID}
}

// Equal reports whether two locations name the same (stackName, logicalId) pair.
func (l Location) Equal(other Location) bool {
	return l.StackName == other.StackName && l.LogicalResourceID == other.LogicalResourceID
}

// String returns the stable "{stackName}.{logicalId}" debug
// representation — the same format used for graph node ids (spec
// §4.1), kept distinct from ToPath so the two are never conflated.
func (l Location) String() string {
	return fmt.Sprintf("%s.%s", l.StackName, l.LogicalResourceID)
}

// NodeID returns the graph node id for this location: "{stackName}.{logicalId}".
func (l Location) NodeID() string {
	return l.String()
}

// ParseNodeID splits a "{stackName}.{logicalId}" node id back into a
// Location. The logical id may not itself contain a dot in
// CloudFormation, so the first dot is the separator.
func ParseNodeID(nodeID string) (Location, bool) {
	for i := 0; i < len(nodeID); i++ {
		if nodeID[i] == '.' {
			return Location{StackName: nodeID[:i], LogicalResourceID: nodeID[i+1:]}, true
		}
	}
	return Location{}, false
}

// ToPath returns the resource's Metadata["aws:cdk:path"] if present,
// else "{stackName}.{logicalResourceId}" (spec §3). lookup resolves
// this location's Resource; if it cannot, the fallback form is used.
func (l Location) ToPath(lookup func(Location) (Resource, bool)) string {
	if lookup != nil {
		if res, ok := lookup(l); ok {
			if path, ok := res.CDKPath(); ok && path != "" {
				return path
			}
		}
	}
	return l.String()
}

// Type returns the resource's Type, or "Unknown" if it cannot be
// resolved (spec §3).
func (l Location) Type(lookup func(Location) (Resource, bool)) string {
	if lookup != nil {
		if res, ok := lookup(l); ok {
			return res.TypeOrUnknown()
		}
	}
	return "Unknown"
}

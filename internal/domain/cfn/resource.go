package cfn

// Resource is a single CloudFormation resource body: its type, its
// property tree, its metadata tree, and its dependency list. DependsOn
// is normalized to a slice regardless of whether the wire form was a
// scalar string or a sequence (spec §3).
type Resource struct {
	Type       string
	Properties Value
	Metadata   Value
	DependsOn  []string
}

// TypeOrUnknown returns the resource's Type, or "Unknown" if empty,
// matching Location.Type()'s fallback in spec §3.
func (r Resource) TypeOrUnknown() string {
	if r.Type == "" {
		return "Unknown"
	}
	return r.Type
}

// CDKPath returns the construct path recorded at
// Metadata["aws:cdk:path"], if present.
func (r Resource) CDKPath() (string, bool) {
	if r.Metadata.Kind() != KindMap {
		return "", false
	}
	v, ok := r.Metadata.Get(MetadataCDKPathKey)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// WithoutCDKPath returns a copy of the resource with the
// aws:cdk:path metadata entry removed.
func (r Resource) WithoutCDKPath() Resource {
	r.Metadata = r.Metadata.WithoutKey(MetadataCDKPathKey)
	return r
}

// WithCDKPath returns a copy of the resource with Metadata["aws:cdk:path"]
// set to path.
func (r Resource) WithCDKPath(path string) Resource {
	r.Metadata = r.Metadata.WithKey(MetadataCDKPathKey, String(path))
	return r
}

// MetadataCDKPathKey is the reserved metadata key carrying the CDK
// construct path, stripped before hashing (spec §4.2) and preserved
// from the deployed side during synthesis (spec §4.5 step 4).
const MetadataCDKPathKey = "aws:cdk:path"

// Reserved wire keys inside a resource body (spec §6).
const (
	KeyType       = "Type"
	KeyProperties = "Properties"
	KeyMetadata   = "Metadata"
	KeyDependsOn  = "DependsOn"
)

// Reserved wire keys inside property trees (spec §6).
const (
	FnRef         = "Ref"
	FnGetAtt      = "Fn::GetAtt"
	FnImportValue = "Fn::ImportValue"
	FnSub         = "Fn::Sub"
	FnJoin        = "Fn::Join"
)

// Sentinel tag key used by reference stripping (spec §4.2) to replace
// an intrinsic-function subtree before hashing.
const SentinelKey = "__cloud_ref__"

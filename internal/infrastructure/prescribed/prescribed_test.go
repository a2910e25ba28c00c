package prescribed

import (
	"testing"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

func env() cfn.Environment { return cfn.Environment{Account: "111", Region: "us-east-1", Name: "prod"} }

func deployedStacks() []cfn.Stack {
	tmpl := cfn.NewTemplate()
	tmpl.Resources["Bucket"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	return []cfn.Stack{{Environment: env(), StackName: "Old", Template: tmpl}}
}

func TestUsePrescribedMappingsHappyPath(t *testing.T) {
	resolver := NewStaticResolver(deployedStacks())
	groups := []Group{{Environment: env(), Mappings: map[string]string{"Old.Bucket": "New.Bucket"}}}

	mappings, err := UsePrescribedMappings(groups, resolver)
	if err != nil {
		t.Fatalf("UsePrescribedMappings: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("mappings = %v, want 1", mappings)
	}
	if mappings[0].Source != cfn.NewLocation("Old", "Bucket") || mappings[0].Destination != cfn.NewLocation("New", "Bucket") {
		t.Fatalf("mapping = %+v", mappings[0])
	}
}

func TestUsePrescribedMappingsInvalidLocation(t *testing.T) {
	resolver := NewStaticResolver(deployedStacks())
	groups := []Group{{Environment: env(), Mappings: map[string]string{"NoDotHere": "New.Bucket"}}}

	_, err := UsePrescribedMappings(groups, resolver)
	if _, ok := err.(*cfn.InvalidLocationError); !ok {
		t.Fatalf("error = %T, want *cfn.InvalidLocationError", err)
	}
}

func TestUsePrescribedMappingsSourceStackNotFound(t *testing.T) {
	resolver := NewStaticResolver(deployedStacks())
	groups := []Group{{Environment: env(), Mappings: map[string]string{"Ghost.Bucket": "New.Bucket"}}}

	_, err := UsePrescribedMappings(groups, resolver)
	if _, ok := err.(*cfn.SourceNotFoundError); !ok {
		t.Fatalf("error = %T, want *cfn.SourceNotFoundError", err)
	}
}

func TestUsePrescribedMappingsSourceResourceNotFound(t *testing.T) {
	resolver := NewStaticResolver(deployedStacks())
	groups := []Group{{Environment: env(), Mappings: map[string]string{"Old.Ghost": "New.Bucket"}}}

	_, err := UsePrescribedMappings(groups, resolver)
	if _, ok := err.(*cfn.SourceNotFoundError); !ok {
		t.Fatalf("error = %T, want *cfn.SourceNotFoundError", err)
	}
}

func TestUsePrescribedMappingsDestinationOccupied(t *testing.T) {
	tmpl := cfn.NewTemplate()
	tmpl.Resources["Bucket"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	tmpl.Resources["OtherBucket"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	stacks := []cfn.Stack{{Environment: env(), StackName: "Old", Template: tmpl}}

	resolver := NewStaticResolver(stacks)
	groups := []Group{{Environment: env(), Mappings: map[string]string{"Old.Bucket": "Old.OtherBucket"}}}

	_, err := UsePrescribedMappings(groups, resolver)
	if _, ok := err.(*cfn.DestinationOccupiedError); !ok {
		t.Fatalf("error = %T, want *cfn.DestinationOccupiedError", err)
	}
}

func TestUsePrescribedMappingsDuplicateDestination(t *testing.T) {
	tmpl := cfn.NewTemplate()
	tmpl.Resources["BucketA"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	tmpl.Resources["BucketB"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	stacks := []cfn.Stack{{Environment: env(), StackName: "Old", Template: tmpl}}

	resolver := NewStaticResolver(stacks)
	groups := []Group{{Environment: env(), Mappings: map[string]string{
		"Old.BucketA": "New.Bucket",
		"Old.BucketB": "New.Bucket",
	}}}

	_, err := UsePrescribedMappings(groups, resolver)
	if _, ok := err.(*cfn.DuplicateDestinationError); !ok {
		t.Fatalf("error = %T, want *cfn.DuplicateDestinationError", err)
	}
}

func TestStaticResolverScopedByEnvironment(t *testing.T) {
	resolver := NewStaticResolver(deployedStacks())
	other := cfn.Environment{Account: "222", Region: "us-east-1", Name: "staging"}

	if resolver.StackExists(other, "Old") {
		t.Fatal("expected StackExists to be scoped by environment")
	}
	if !resolver.StackExists(env(), "Old") {
		t.Fatal("expected StackExists to find the stack in its own environment")
	}
}

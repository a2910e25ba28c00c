package cfn

import "fmt"

// Environment is the (account, region, name) triple identifying an
// isolation scope. Mappings are computed per environment; a resource
// never crosses environments (spec §3).
type Environment struct {
	Account string
	Region  string
	Name    string
}

func (e Environment) String() string {
	return fmt.Sprintf("%s/%s/%s", e.Account, e.Region, e.Name)
}

func (e Environment) Equal(other Environment) bool {
	return e.Account == other.Account && e.Region == other.Region && e.Name == other.Name
}

// Stack bundles an environment, a stack name, its template, and an
// optional assume-role ARN used by the caller's own credential
// acquisition (opaque to the core; spec §3).
type Stack struct {
	Environment    Environment
	StackName      string
	Template       *Template
	AssumeRoleArn  string
}

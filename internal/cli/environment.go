package cli

import "github.com/stackmove/stackmove/internal/domain/cfn"

func environmentFromFlags(account, region, name string) cfn.Environment {
	return cfn.Environment{Account: account, Region: region, Name: name}
}

package blob

import (
	"testing"

	"innkeep/testutil"
)

// The blob layer is domain-agnostic storage plumbing. The export path hands
// it encoded bytes; it must never reach back into reservation semantics.
func TestBlobDoesNotImportDomainOrService(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.DomainImportForbidden,
		"blob facade must not depend on the domain layer")
	testutil.AssertNoDirectImports(t, ".", testutil.ServiceImportForbidden,
		"blob facade must not depend on the service layer")
	for _, dir := range []string{"core", "../infra/blob/fs", "../infra/blob/memory", "../infra/blob/s3"} {
		testutil.AssertNoDirectImports(t, dir, testutil.DomainImportForbidden,
			"blob backends must not depend on the domain layer")
	}
}

// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// addressRegex splits `name[period]`; the name is checked separately with
// the HCL identifier rules, which admit Unicode letters.
var addressRegex = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// Parse creates a new Address by parsing its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(rawID)
	if matches == nil || !hclsyntax.ValidIdentifier(matches[1]) {
		return Address{}, fmt.Errorf("invalid address format: %q", rawID)
	}

	period, err := strconv.Atoi(matches[2])
	if err != nil {
		// Only reachable on overflow, the regex admits digits only.
		return Address{}, fmt.Errorf("invalid period in %q: %w", rawID, err)
	}
	return Address{Variable: matches[1], Period: period}, nil
}

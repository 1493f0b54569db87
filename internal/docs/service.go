package docs

import (
	"fmt"
	"strings"

	"github.com/yourorg/sdkdoc/pkg/types"
)

// OfficialServiceName returns the display name of a service: the full name,
// followed by the abbreviation in parentheses unless the full name already
// mentions it.
func OfficialServiceName(meta types.Metadata) string {
	official := meta.ServiceFullName
	short := meta.ServiceAbbreviation
	short = strings.TrimPrefix(short, "Amazon ")
	short = strings.TrimPrefix(short, "AWS ")
	short = strings.TrimSpace(short)
	if short == "" || strings.Contains(strings.ToLower(official), strings.ToLower(short)) {
		return official
	}
	return fmt.Sprintf("%s (%s)", official, short)
}

package match

import (
	"strings"

	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// Normalize folds a name for comparison: the package and any enclosing
// classes are dropped, letters are lower-cased and '_', '-' and '$' are
// removed. "com/example/Outer$Inner_Name" becomes "innername".
func Normalize(s string) string {
	_, simple := common.SplitPackage(s)
	simple = common.LastInner(simple)

	var sb strings.Builder

	sb.Grow(len(simple))

	for _, r := range simple {
		if isSeparator(r) {
			continue
		}

		sb.WriteString(strings.ToLower(string(r)))
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '$'
}

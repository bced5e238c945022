package renamer

import (
	"strconv"
	"strings"

	"github.com/classhook/classhook/internal/js_ast"
	"github.com/classhook/classhook/internal/js_lexer"
)

// Returns every name that a generated symbol must not collide with. This is
// all keywords, all strict mode reserved words, and the name of every symbol
// in the file whether it's declared or unbound.
func ComputeReservedNames(moduleScope *js_ast.Scope, symbols []js_ast.Symbol) map[string]uint32 {
	names := make(map[string]uint32)

	// All keywords and strict mode reserved words are reserved names
	for k := range js_lexer.Keywords {
		names[k] = 1
	}
	for k := range js_lexer.StrictModeReservedWords {
		names[k] = 1
	}

	// Unbound names may only exist as members of the module scope
	for _, member := range moduleScope.Members {
		names[symbols[member.Ref.InnerIndex].OriginalName] = 1
	}

	for _, symbol := range symbols {
		names[symbol.OriginalName] = 1
	}

	return names
}

type Renamer interface {
	NameForSymbol(ref js_ast.Ref) string
}

////////////////////////////////////////////////////////////////////////////////
// noOpRenamer

type noOpRenamer struct {
	symbols []js_ast.Symbol
}

// Generated symbols are already given unique names when they are created, so
// printing never needs to rename anything
func NewNoOpRenamer(symbols []js_ast.Symbol) Renamer {
	return &noOpRenamer{
		symbols: symbols,
	}
}

func (r *noOpRenamer) NameForSymbol(ref js_ast.Ref) string {
	return r.symbols[ref.InnerIndex].OriginalName
}

////////////////////////////////////////////////////////////////////////////////
// UniqueNamer

// Hands out names of the form "_seed", "_seed2", "_seed3", ... that don't
// collide with any reserved name or with any name it handed out before.
type UniqueNamer struct {
	used map[string]uint32
}

func NewUniqueNamer(reservedNames map[string]uint32) *UniqueNamer {
	used := make(map[string]uint32, len(reservedNames))
	for name, count := range reservedNames {
		used[name] = count
	}
	return &UniqueNamer{used: used}
}

// Marks a name as taken, such as the name of a symbol declared after the
// reserved names were computed
func (n *UniqueNamer) Reserve(name string) {
	if _, ok := n.used[name]; !ok {
		n.used[name] = 1
	}
}

func (n *UniqueNamer) NextName(seed string) string {
	prefix := "_" + TrimSeed(seed)
	name := prefix

	if tries, ok := n.used[prefix]; ok {
		for {
			tries++
			name = prefix + strconv.Itoa(int(tries))
			if _, ok := n.used[name]; !ok {
				break
			}
		}

		// Start from here next time to avoid O(n^2) behavior
		n.used[prefix] = tries
	}

	n.used[name] = 1
	return name
}

// Strips leading underscores and trailing digits so that "_Foo2" and "Foo"
// both become "Foo". Characters that can't appear in an identifier are
// replaced with underscores.
func TrimSeed(seed string) string {
	sb := strings.Builder{}
	for i, c := range seed {
		if (i == 0 && js_ast.IsIdentifierStart(c)) || (i > 0 && js_ast.IsIdentifierContinue(c)) {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	text := strings.TrimLeft(sb.String(), "_")
	return strings.TrimRight(text, "0123456789")
}

package circuit

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// wireLexer defines the lexical structure of wire list files.
var wireLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - shell style (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `[-+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),]`},
})

// wireFile is the parse tree of a wire list.
type wireFile struct {
	Name  *string     `parser:"( 'circuit' @String )?"`
	Wires []*wireLine `parser:"@@*"`
}

type wireLine struct {
	Pos  lexer.Position
	From *coord `parser:"'wire' @@ '->'"`
	To   *coord `parser:"@@"`
}

type coord struct {
	X float64 `parser:"'(' @Number ','"`
	Y float64 `parser:"@Number ')'"`
}

func buildParser() (*participle.Parser[wireFile], error) {
	return participle.Build[wireFile](
		participle.Lexer(wireLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
	)
}

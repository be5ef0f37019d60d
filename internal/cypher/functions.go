package cypher

// builtin describes one entry of the built-in function expansion table.
// expand receives the already-translated argument strings and returns the
// expanded Cypher fragment.
type builtin struct {
	arity  int
	expand func(args []string) string
}

// builtins is the closed function registry; any Call whose name is not a
// key here is an Unknown function error. "instance" is listed for arity
// checking but is only ever expanded by the source-clause logic in
// translateSource — a bare call to it elsewhere falls through to the
// generic expand path below, which is undefined, so it is rejected as
// unsupported.
var builtins = map[string]builtin{
	"route": {
		arity: 2,
		expand: func(a []string) string {
			return "(" + a[0] + ")-[*1..]->(" + a[1] + ")"
		},
	},
	"cross": {
		arity: 2,
		expand: func(a []string) string {
			return "[ x IN " + a[0] + " WHERE x IN " + a[1] + " ]"
		},
	},
	"union": {
		arity: 2,
		expand: func(a []string) string {
			return "WITH " + a[0] + " + " + a[1] + " AS combined UNWIND combined AS item RETURN collect(DISTINCT item) AS unionSet"
		},
	},
	"articulation": {
		arity: 1,
		expand: func(a []string) string {
			return "(" + a[0] + ".articulationPoint IS NULL OR " + a[0] + ".articulationPoint = 0)"
		},
	},
	"instance": {
		arity: 1,
		expand: nil,
	},
}

package element

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PathOp is a path command verb. All coordinates are absolute.
type PathOp byte

// Path verbs.
const (
	OpMove  PathOp = 'M' // x y
	OpLine  PathOp = 'L' // x y
	OpQuad  PathOp = 'Q' // cx cy x y
	OpCubic PathOp = 'C' // c1x c1y c2x c2y x y
	OpClose PathOp = 'Z'
)

// Arity returns the number of arguments the verb takes, or -1 for an
// unknown verb.
func (op PathOp) Arity() int {
	switch op {
	case OpMove, OpLine:
		return 2
	case OpQuad:
		return 4
	case OpCubic:
		return 6
	case OpClose:
		return 0
	}
	return -1
}

// String implements fmt.Stringer.
func (op PathOp) String() string { return string(rune(op)) }

// PathCommand is one verb with its arguments.
type PathCommand struct {
	Op   PathOp
	Args []float64
}

// MoveTo, LineTo, QuadTo, CubicTo and Close build path commands.
func MoveTo(x, y float64) PathCommand { return PathCommand{Op: OpMove, Args: []float64{x, y}} }

// LineTo returns an OpLine command.
func LineTo(x, y float64) PathCommand { return PathCommand{Op: OpLine, Args: []float64{x, y}} }

// QuadTo returns an OpQuad command.
func QuadTo(cx, cy, x, y float64) PathCommand {
	return PathCommand{Op: OpQuad, Args: []float64{cx, cy, x, y}}
}

// CubicTo returns an OpCubic command.
func CubicTo(c1x, c1y, c2x, c2y, x, y float64) PathCommand {
	return PathCommand{Op: OpCubic, Args: []float64{c1x, c1y, c2x, c2y, x, y}}
}

// Close returns an OpClose command.
func Close() PathCommand { return PathCommand{Op: OpClose} }

var (
	pathSegmentRe = regexp.MustCompile(`([MmLlHhVvQqCcZz])([^MmLlHhVvQqCcZz]*)`)
	pathNumberRe  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// ParsePathData parses the SVG path-data subset M, L, H, V, Q, C and Z in
// both absolute and relative forms, and returns absolute commands.
// Repeated coordinate groups after a verb are accepted ("L 1 2 3 4");
// extra pairs after M are line-tos, as in SVG.
func ParsePathData(d string) ([]PathCommand, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, ErrMissingPathData
	}

	var (
		cmds       []PathCommand
		cur, start Point
	)
	for _, m := range pathSegmentRe.FindAllStringSubmatch(d, -1) {
		verb := m[1][0]
		rel := verb >= 'a' && verb <= 'z'
		args, err := parseNumbers(m[2])
		if err != nil {
			return nil, err
		}

		abs := func(x, y float64) (float64, float64) {
			if rel {
				return cur.X + x, cur.Y + y
			}
			return x, y
		}

		switch verb {
		case 'Z', 'z':
			cmds = append(cmds, Close())
			cur = start
		case 'H', 'h':
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: %c needs an argument", ErrInvalidGeometry, verb)
			}
			for _, x := range args {
				if rel {
					x += cur.X
				}
				cur.X = x
				cmds = append(cmds, LineTo(cur.X, cur.Y))
			}
		case 'V', 'v':
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: %c needs an argument", ErrInvalidGeometry, verb)
			}
			for _, y := range args {
				if rel {
					y += cur.Y
				}
				cur.Y = y
				cmds = append(cmds, LineTo(cur.X, cur.Y))
			}
		default:
			op := PathOp(verb &^ 0x20) // upper case
			n := op.Arity()
			if len(args) == 0 || len(args)%n != 0 {
				return nil, fmt.Errorf("%w: %c takes %d arguments, got %d",
					ErrInvalidGeometry, verb, n, len(args))
			}
			for i := 0; i < len(args); i += n {
				group := args[i : i+n]
				out := make([]float64, n)
				for j := 0; j < n; j += 2 {
					out[j], out[j+1] = abs(group[j], group[j+1])
				}
				cmdOp := op
				if op == OpMove && i > 0 {
					cmdOp = OpLine
				}
				cmds = append(cmds, PathCommand{Op: cmdOp, Args: out})
				cur = Point{X: out[n-2], Y: out[n-1]}
				if cmdOp == OpMove {
					start = cur
				}
			}
		}
	}

	if len(cmds) == 0 {
		return nil, ErrMissingPathData
	}
	return cmds, nil
}

func parseNumbers(s string) ([]float64, error) {
	matches := pathNumberRe.FindAllString(s, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrInvalidGeometry, m)
		}
		out = append(out, v)
	}
	return out, nil
}

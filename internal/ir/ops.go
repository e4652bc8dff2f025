package ir

// ComparisonPredicate selects a Compare instruction's relation.
type ComparisonPredicate uint8

const (
	LessThan ComparisonPredicate = iota
	LessThanOrEqualTo
	GreaterThan
	GreaterThanOrEqualTo
	EqualTo
	NotEqualTo
	numComparisonPredicates
)

var comparisonNames = [...]string{
	LessThan:             "lt",
	LessThanOrEqualTo:    "leq",
	GreaterThan:          "gt",
	GreaterThanOrEqualTo: "geq",
	EqualTo:              "eq",
	NotEqualTo:           "neq",
}

// ArithmeticOperator selects an elementwise binary operation.
type ArithmeticOperator uint8

const (
	Add ArithmeticOperator = iota
	Subtract
	Multiply
	Divide
	Min
	Max
	TruncateDivide
	FloorDivide
	Mod
	Power
	numArithmeticOperators
)

var arithmeticNames = [...]string{
	Add:            "add",
	Subtract:       "sub",
	Multiply:       "mul",
	Divide:         "div",
	Min:            "min",
	Max:            "max",
	TruncateDivide: "truncDiv",
	FloorDivide:    "floorDiv",
	Mod:            "mod",
	Power:          "pow",
}

// ElementwiseFunction selects an elementwise unary transform.
type ElementwiseFunction uint8

const (
	Sigmoid ElementwiseFunction = iota
	ReLU
	Tanh
	Log
	Exp
	Neg
	Sign
	Square
	Sqrt
	Round
	Rsqrt
	Ceil
	Floor
	Tan
	Cos
	Sin
	Acos
	Asin
	Atan
	Lgamma
	Digamma
	Erf
	Erfc
	Rint
	numElementwiseFunctions
)

var elementwiseNames = [...]string{
	Sigmoid: "sigmoid", ReLU: "relu", Tanh: "tanh",
	Log: "log", Exp: "exp", Neg: "neg", Sign: "sign", Square: "square",
	Sqrt: "sqrt", Round: "round", Rsqrt: "rsqrt", Ceil: "ceil", Floor: "floor",
	Tan: "tan", Cos: "cos", Sin: "sin", Acos: "acos", Asin: "asin", Atan: "atan",
	Lgamma: "lgamma", Digamma: "digamma", Erf: "erf", Erfc: "erfc", Rint: "rint",
}

// ReductionFunction selects a reduction to a scalar.
type ReductionFunction uint8

const (
	ReduceAdd ReductionFunction = iota
	ReduceMultiply
	ReduceMin
	ReduceMax
	ReduceAnd
	ReduceOr
	ReduceMean
	numReductionFunctions
)

var reductionNames = [...]string{
	ReduceAdd:      "reduceAdd",
	ReduceMultiply: "reduceMul",
	ReduceMin:      "reduceMin",
	ReduceMax:      "reduceMax",
	ReduceAnd:      "reduceAnd",
	ReduceOr:       "reduceOr",
	ReduceMean:     "reduceMean",
}

// BinaryReductionFunction selects a two-operand reduction.
type BinaryReductionFunction uint8

const (
	CrossEntropy BinaryReductionFunction = iota
	numBinaryReductionFunctions
)

var binaryReductionNames = [...]string{
	CrossEntropy: "crossEnt",
}

// ScanFunction selects a prefix scan.
type ScanFunction uint8

const (
	ScanAdd ScanFunction = iota
	ScanMultiply
	numScanFunctions
)

var scanNames = [...]string{
	ScanAdd:      "scanAdd",
	ScanMultiply: "scanMul",
}

// AggregateFunction selects a shape-preserving aggregate transform.
type AggregateFunction uint8

const (
	Softmax AggregateFunction = iota
	LogSoftmax
	numAggregateFunctions
)

var aggregateNames = [...]string{
	Softmax:    "softmax",
	LogSoftmax: "logSoftmax",
}

func lexeme(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return "unknown"
}

func (p ComparisonPredicate) String() string     { return lexeme(comparisonNames[:], int(p)) }
func (o ArithmeticOperator) String() string      { return lexeme(arithmeticNames[:], int(o)) }
func (f ElementwiseFunction) String() string     { return lexeme(elementwiseNames[:], int(f)) }
func (f ReductionFunction) String() string       { return lexeme(reductionNames[:], int(f)) }
func (f BinaryReductionFunction) String() string { return lexeme(binaryReductionNames[:], int(f)) }
func (f ScanFunction) String() string            { return lexeme(scanNames[:], int(f)) }
func (f AggregateFunction) String() string       { return lexeme(aggregateNames[:], int(f)) }

// Operator lists, in declaration order. Front ends build their lexicons
// from these.
var (
	ComparisonPredicates     = enumerate[ComparisonPredicate](numComparisonPredicates)
	ArithmeticOperators      = enumerate[ArithmeticOperator](numArithmeticOperators)
	ElementwiseFunctions     = enumerate[ElementwiseFunction](numElementwiseFunctions)
	ReductionFunctions       = enumerate[ReductionFunction](numReductionFunctions)
	BinaryReductionFunctions = enumerate[BinaryReductionFunction](numBinaryReductionFunctions)
	ScanFunctions            = enumerate[ScanFunction](numScanFunctions)
	AggregateFunctions       = enumerate[AggregateFunction](numAggregateFunctions)
)

func enumerate[E ~uint8](n E) []E {
	out := make([]E, n)
	for i := range out {
		out[i] = E(i)
	}
	return out
}

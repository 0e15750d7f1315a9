package grammar

// Flat statement language fed to the three-address-code generator:
// assignments over arithmetic expressions, while loops, and the control
// statements the optimizer recognizes as markers.

type Program struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Comment *Comment    `  @@`
	While   *WhileStmt  `| @@`
	Exit    *ExitStmt   `| @@`
	Return  *ReturnStmt `| @@`
	Call    *CallStmt   `| @@`
	Label   *LabelStmt  `| @@`
	Assign  *AssignStmt `| @@`
}

type Comment struct {
	Text string `@Comment`
}

type AssignStmt struct {
	Target string `@Ident "="`
	Value  *Expr  `@@ ";"`
}

type WhileStmt struct {
	Cond *Expr        `"while" @@ "{"`
	Body []*Statement `@@* "}"`
}

type ExitStmt struct {
	Exit bool `@"exit" ";"`
}

type ReturnStmt struct {
	Return bool  `@"return"`
	Value  *Expr `[ @@ ] ";"`
}

type CallStmt struct {
	Name string `"call" @Ident ";"`
}

type LabelStmt struct {
	Name string `@Ident ":"`
}

type Expr struct {
	Left *UnaryExpr `@@`
	Ops  []*BinOp   `{ @@ }`
}

type BinOp struct {
	Operator string     `@("+" | "-" | "*" | "/" | "<<" | ">>")`
	Right    *UnaryExpr `@@`
}

type UnaryExpr struct {
	Minus bool         `[ @"-" ]`
	Value *PrimaryExpr `@@`
}

type PrimaryExpr struct {
	Float   *string `  @Float`
	Integer *string `| @Integer`
	Ident   *string `| @Ident`
	Parens  *Expr   `| "(" @@ ")"`
}

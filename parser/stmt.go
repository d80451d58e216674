package parser

type Stmt interface {
}

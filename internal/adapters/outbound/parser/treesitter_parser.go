package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/abdidvp/usedirective/internal/domain"
)

// SupportedExtensions lists the file extensions the parser can read.
var SupportedExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// TreeSitterParser implements domain.SourceParser for JavaScript and
// TypeScript using tree-sitter grammars.
type TreeSitterParser struct{}

func New() *TreeSitterParser {
	return &TreeSitterParser{}
}

// IsSupported reports whether path has an extension the parser understands.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		// Synthetic paths and .js/.jsx/.mjs/.cjs all use the JavaScript
		// grammar, which includes JSX.
		return javascript.GetLanguage()
	}
}

// Parse builds a SourceFile whose statements are the program's top-level
// children, excluding comments and the shebang line.
func (p *TreeSitterParser) Parse(path string, content []byte) (*domain.SourceFile, error) {
	// Parsers are not safe for concurrent use; one per call keeps Parse
	// callable from many goroutines.
	ps := sitter.NewParser()
	defer ps.Close()
	ps.SetLanguage(languageFor(path))

	tree, err := ps.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("parsing %s: syntax error", path)
	}

	file := &domain.SourceFile{
		Path: path,
		Text: string(content),
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "comment", "hash_bang_line":
			continue
		}
		file.Statements = append(file.Statements, statementFor(child, content))
	}

	return file, nil
}

// statementFor tags a top-level node. A directive is an expression statement
// whose only expression is a string literal; a parenthesized string is not.
func statementFor(node *sitter.Node, content []byte) domain.Statement {
	st := domain.Statement{
		Span: domain.Span{Start: int(node.StartByte()), End: int(node.EndByte())},
	}

	if node.Type() != "expression_statement" {
		return st
	}

	var expr *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		if expr != nil {
			return st
		}
		expr = c
	}
	if expr == nil || expr.Type() != "string" {
		return st
	}

	raw := expr.Content(content)
	if len(raw) < 2 {
		return st
	}
	st.Kind = domain.StatementDirective
	st.Directive = raw[1 : len(raw)-1]
	return st
}

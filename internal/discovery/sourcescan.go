package discovery

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

func modelCardinality(v string) model.Cardinality {
	switch strings.ToLower(v) {
	case "many":
		return model.CardinalityMany
	default:
		return model.CardinalityOne
	}
}

// SourceScan is the source-scan discovery strategy. It parses Go source
// text with the standard library's go/ast package, searching for
// discovery.Entity(...) and discovery.Operation(...) call expressions and
// extracting their option-struct literal without executing any user code.
// Used for bootstrap, projects with broken imports, and the CLI's
// codebase-scan command.
type SourceScan struct {
	reg *registry.Registry
}

// NewSourceScan returns a SourceScan strategy bound to reg.
func NewSourceScan(reg *registry.Registry) *SourceScan {
	return &SourceScan{reg: reg}
}

// ScanFiles parses each path in paths (in the order given, which becomes
// discovery order) and registers every Entity/Operation call it finds.
func (s *SourceScan) ScanFiles(paths []string) error {
	fset := token.NewFileSet()
	for _, path := range paths {
		if filepath.Ext(path) != ".go" {
			continue
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return streamyerrors.NewParseError(path, 0, err)
		}
		if err := s.scanFile(fset, path, node); err != nil {
			return err
		}
	}
	return nil
}

func (s *SourceScan) scanFile(fset *token.FileSet, path string, file *ast.File) error {
	var outerErr error
	ast.Inspect(file, func(n ast.Node) bool {
		if outerErr != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		switch sel.Sel.Name {
		case "Entity":
			opts, err := extractEntityOptions(call)
			if err != nil {
				outerErr = annotate(path, fset, call, err)
				return false
			}
			if opts == nil {
				return true
			}
			d, err := buildEntity(*opts)
			if err != nil {
				outerErr = annotate(path, fset, call, err)
				return false
			}
			if err := s.reg.RegisterEntity(d); err != nil {
				outerErr = err
				return false
			}
		case "Operation":
			opts, err := extractOperationOptions(call)
			if err != nil {
				outerErr = annotate(path, fset, call, err)
				return false
			}
			if opts == nil {
				return true
			}
			d, err := buildOperation(*opts)
			if err != nil {
				outerErr = annotate(path, fset, call, err)
				return false
			}
			if err := s.reg.RegisterOperation(d); err != nil {
				outerErr = err
				return false
			}
		}
		return true
	})
	return outerErr
}

func annotate(path string, fset *token.FileSet, n ast.Node, err error) error {
	line := fset.Position(n.Pos()).Line
	return streamyerrors.NewParseError(path, line, err)
}

// extractEntityOptions locates the EntityOptions{...} composite literal
// among call's arguments and decodes it. Returns nil, nil if no argument
// looks like an EntityOptions literal (the call may be unrelated code that
// happens to be named Entity/Operation on some other package).
func extractEntityOptions(call *ast.CallExpr) (*EntityOptions, error) {
	lit := findOptionsLiteral(call, "EntityOptions")
	if lit == nil {
		return nil, nil
	}

	opts := &EntityOptions{}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key := identName(kv.Key)
		switch key {
		case "Name":
			opts.Name, _ = stringLiteral(kv.Value)
		case "Description":
			opts.Description, _ = stringLiteral(kv.Value)
		case "Tags":
			opts.Tags = stringSliceLiteral(kv.Value)
		case "Fields":
			fields, err := fieldSliceLiteral(kv.Value)
			if err != nil {
				return nil, err
			}
			opts.Fields = fields
		case "Relations":
			rels, err := relationSliceLiteral(kv.Value)
			if err != nil {
				return nil, err
			}
			opts.Relations = rels
		}
	}
	return opts, nil
}

func extractOperationOptions(call *ast.CallExpr) (*OperationOptions, error) {
	lit := findOptionsLiteral(call, "OperationOptions")
	if lit == nil {
		return nil, nil
	}

	opts := &OperationOptions{}
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key := identName(kv.Key)
		switch key {
		case "Name":
			opts.Name, _ = stringLiteral(kv.Value)
		case "Description":
			opts.Description, _ = stringLiteral(kv.Value)
		case "Input":
			opts.Input, _ = stringLiteral(kv.Value)
		case "Output":
			opts.Output, _ = stringLiteral(kv.Value)
		case "Category":
			opts.Category, _ = stringLiteral(kv.Value)
		case "Stage":
			opts.Stage, _ = stringLiteral(kv.Value)
		case "Tags":
			opts.Tags = stringSliceLiteral(kv.Value)
		case "Reads":
			opts.Reads = stringSliceLiteral(kv.Value)
		case "Writes":
			opts.Writes = stringSliceLiteral(kv.Value)
		case "Track":
			opts.Track = boolLiteral(kv.Value)
		case "InputFields":
			fields, err := fieldSliceLiteral(kv.Value)
			if err != nil {
				return nil, err
			}
			opts.InputFields = fields
		case "OutputFields":
			fields, err := fieldSliceLiteral(kv.Value)
			if err != nil {
				return nil, err
			}
			opts.OutputFields = fields
		}
	}
	return opts, nil
}

// findOptionsLiteral scans call's arguments for a composite literal whose
// type name ends with suffix (matching both "EntityOptions{...}" and
// "discovery.EntityOptions{...}" spellings).
func findOptionsLiteral(call *ast.CallExpr, suffix string) *ast.CompositeLit {
	for _, arg := range call.Args {
		lit, ok := arg.(*ast.CompositeLit)
		if !ok {
			continue
		}
		if typeNameSuffix(lit.Type) == suffix {
			return lit
		}
	}
	return nil
}

func typeNameSuffix(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return ""
	}
}

func identName(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

func boolLiteral(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == "true"
}

func stringSliceLiteral(expr ast.Expr) []string {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		if v, ok := stringLiteral(elt); ok {
			out = append(out, v)
		}
	}
	return out
}

func fieldSliceLiteral(expr ast.Expr) ([]FieldOption, error) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, nil
	}
	out := make([]FieldOption, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		fieldLit, ok := elt.(*ast.CompositeLit)
		if !ok {
			continue
		}
		var f FieldOption
		for _, inner := range fieldLit.Elts {
			kv, ok := inner.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			switch identName(kv.Key) {
			case "Name":
				f.Name, _ = stringLiteral(kv.Value)
			case "TypeName":
				f.TypeName, _ = stringLiteral(kv.Value)
			case "IsRequired":
				f.IsRequired = boolLiteral(kv.Value)
			case "Description":
				f.Description, _ = stringLiteral(kv.Value)
			case "DefaultLiteral":
				f.DefaultLiteral, _ = stringLiteral(kv.Value)
				f.HasDefault = true
			}
		}
		if f.Name == "" {
			return nil, fmt.Errorf("field literal missing Name")
		}
		out = append(out, f)
	}
	return out, nil
}

func relationSliceLiteral(expr ast.Expr) ([]RelationOption, error) {
	lit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil, nil
	}
	out := make([]RelationOption, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		relLit, ok := elt.(*ast.CompositeLit)
		if !ok {
			continue
		}
		var r RelationOption
		for _, inner := range relLit.Elts {
			kv, ok := inner.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			switch identName(kv.Key) {
			case "FieldName":
				r.FieldName, _ = stringLiteral(kv.Value)
			case "TargetEntityName":
				r.TargetEntityName, _ = stringLiteral(kv.Value)
			case "Cardinality":
				v, _ := stringLiteral(kv.Value)
				if v == "" {
					v = strings.TrimPrefix(identName(kv.Value), "Cardinality")
				}
				r.Cardinality = modelCardinality(v)
			case "Via":
				r.Via, _ = stringLiteral(kv.Value)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

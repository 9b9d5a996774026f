package extractor

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/docuscan/cli/internal/domain"
)

// ExtractTypesAST is the opt-in precision mode for type extraction: it
// parses the file with the tree-sitter TypeScript grammar instead of
// scanning for `name: type` lines with brace counting. Route and class
// recognition keep using the regex rules either way.
func ExtractTypesAST(ctx context.Context, relPath, content string) ([]domain.Type, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(content))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var types []domain.Type
	src := []byte(content)
	walkNodes(tree.RootNode(), func(node *sitter.Node) {
		switch node.Type() {
		case "interface_declaration":
			types = append(types, astType(node, src, relPath, domain.TypeKindInterface))
		case "class_declaration":
			types = append(types, astType(node, src, relPath, domain.TypeKindClass))
		case "enum_declaration":
			types = append(types, astType(node, src, relPath, domain.TypeKindEnum))
		case "type_alias_declaration":
			types = append(types, astType(node, src, relPath, domain.TypeKindAlias))
		}
	})
	return types, nil
}

func walkNodes(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkNodes(node.NamedChild(i), visit)
	}
}

func astType(node *sitter.Node, src []byte, relPath string, kind domain.TypeKind) domain.Type {
	t := domain.Type{Kind: kind, FilePath: relPath}
	if name := node.ChildByFieldName("name"); name != nil {
		t.Name = name.Content(src)
	}
	t.Properties = astProperties(node, src, kind)
	return t
}

// astProperties collects property signatures / field definitions /
// enum members from a declaration subtree.
func astProperties(node *sitter.Node, src []byte, kind domain.TypeKind) []domain.Property {
	var props []domain.Property
	walkNodes(node, func(n *sitter.Node) {
		switch n.Type() {
		case "property_signature", "public_field_definition":
			prop := domain.Property{}
			if name := n.ChildByFieldName("name"); name != nil {
				prop.Name = name.Content(src)
			}
			if typ := n.ChildByFieldName("type"); typ != nil {
				prop.Type = strings.TrimSpace(strings.TrimPrefix(typ.Content(src), ":"))
			}
			prop.Optional = strings.Contains(n.Content(src), prop.Name+"?")
			if prop.Name != "" {
				props = append(props, prop)
			}
		case "enum_assignment", "property_identifier":
			if kind != domain.TypeKindEnum {
				return
			}
			if n.Type() == "enum_assignment" {
				prop := domain.Property{}
				if name := n.ChildByFieldName("name"); name != nil {
					prop.Name = name.Content(src)
				}
				if value := n.ChildByFieldName("value"); value != nil {
					prop.Type = strings.Trim(value.Content(src), `'"`)
				}
				if prop.Name != "" {
					props = append(props, prop)
				}
			} else if n.Parent() != nil && n.Parent().Type() == "enum_body" {
				props = append(props, domain.Property{Name: n.Content(src)})
			}
		}
	})
	return props
}

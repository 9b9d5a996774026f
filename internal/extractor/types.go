package extractor

import (
	"regexp"
	"strings"

	"github.com/docuscan/cli/internal/domain"
)

var (
	interfaceDeclRe = regexp.MustCompile(
		`(?:export\s+)?\binterface\s+([A-Za-z_$][\w$]*)(?:<[^{>]*>)?(?:\s+extends\s+[^{]+)?\s*\{`)

	enumDeclRe = regexp.MustCompile(
		`(?:export\s+)?(?:const\s+)?\benum\s+([A-Za-z_$][\w$]*)\s*\{`)

	typeAliasRe = regexp.MustCompile(
		`(?:export\s+)?\btype\s+([A-Za-z_$][\w$]*)(?:<[^=>]*>)?\s*=\s*(\{)?`)

	propertyLineRe = regexp.MustCompile(
		`^\s*(?:public\s+|private\s+|protected\s+|readonly\s+|static\s+)*([A-Za-z_$][\w$]*)\s*(\?)?\s*:\s*(.+?)[;,]?\s*$`)

	enumMemberRe = regexp.MustCompile(
		`^\s*([A-Za-z_$][\w$]*)\s*(?:=\s*(.+?))?,?\s*$`)
)

// extractTypes recognizes interface/class/enum/type declarations by
// keyword plus declaration header. Property lists are collected by
// scanning the body for `name: type` shaped lines until the matching
// closing brace, found by brace-depth counting rather than a parser.
// Deeply nested multi-line object types can therefore misattribute
// properties; that imprecision is accepted.
func extractTypes(relPath, content string) []domain.Type {
	var types []domain.Type

	for _, m := range interfaceDeclRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		body := declarationBody(content, m[1]-1)
		types = append(types, domain.Type{
			Name:       name,
			Kind:       domain.TypeKindInterface,
			FilePath:   relPath,
			Properties: scanProperties(body),
		})
	}

	for _, m := range classDeclRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		body := declarationBody(content, m[1]-1)
		types = append(types, domain.Type{
			Name:       name,
			Kind:       domain.TypeKindClass,
			FilePath:   relPath,
			Properties: scanProperties(body),
		})
	}

	for _, m := range enumDeclRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		body := declarationBody(content, m[1]-1)
		types = append(types, domain.Type{
			Name:       name,
			Kind:       domain.TypeKindEnum,
			FilePath:   relPath,
			Properties: scanEnumMembers(body),
		})
	}

	for _, m := range typeAliasRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		var props []domain.Property
		if m[4] >= 0 {
			body := declarationBody(content, m[4])
			props = scanProperties(body)
		}
		types = append(types, domain.Type{
			Name:       name,
			Kind:       domain.TypeKindAlias,
			FilePath:   relPath,
			Properties: props,
		})
	}

	return types
}

// declarationBody returns the text between a declaration's opening
// brace and its matching close brace.
func declarationBody(content string, open int) string {
	end := matchingBrace(content, open)
	if open+1 >= end {
		return ""
	}
	return content[open+1 : end]
}

// scanProperties collects `name: type` shaped lines at the top nesting
// level of a declaration body.
func scanProperties(body string) []domain.Property {
	var props []domain.Property
	depth := 0
	for _, line := range strings.Split(body, "\n") {
		atTopLevel := depth == 0
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if !atTopLevel {
			continue
		}
		m := propertyLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		typ := strings.TrimSpace(m[3])
		props = append(props, domain.Property{
			Name:     m[1],
			Type:     strings.TrimRight(typ, " {"),
			Optional: m[2] == "?",
		})
	}
	return props
}

// scanEnumMembers collects the member names of an enum body. The Type
// field carries the assigned literal, when present.
func scanEnumMembers(body string) []domain.Property {
	var members []domain.Property
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		m := enumMemberRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		members = append(members, domain.Property{
			Name: m[1],
			Type: strings.Trim(m[2], `'"`),
		})
	}
	return members
}

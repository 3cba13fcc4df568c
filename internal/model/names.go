// Package model defines the records handed over by the class-file reader and
// the composed declaration tree built from them.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Path represents a file system path.
type Path string

// JVM names the compiler uses for synthesized members.
const (
	ConstructorName          = "<init>"
	ConstructorNameInLocalFn = "_init_"
	StaticConstructorName    = "<clinit>"
	DefaultImplsClassName    = "DefaultImpls"
)

// GetterNameInLocalFn is the prefix used by local functions declared in a property getter.
func GetterNameInLocalFn(property string) string {
	return "_get_" + property + "_"
}

// SetterNameInLocalFn is the prefix used by local functions declared in a property setter.
func SetterNameInLocalFn(property string) string {
	return "_set_" + property + "_"
}

// Reference returns the descriptor form of an internal class name, e.g. Lcom/example/Foo;.
func Reference(internalName string) string {
	return "L" + internalName + ";"
}

// QualifiedName is a class name split into a dotted package and a dotted relative name.
type QualifiedName struct {
	Package  string
	Relative string
}

// String returns the name in pkg/Relative form.
func (q QualifiedName) String() string {
	return q.Package + "/" + q.Relative
}

// Segments splits the relative name on dots.
func (q QualifiedName) Segments() []string {
	return strings.Split(q.Relative, ".")
}

// LastSegment returns the innermost simple name.
func (q QualifiedName) LastSegment() string {
	if i := strings.LastIndexByte(q.Relative, '.'); i >= 0 {
		return q.Relative[i+1:]
	}

	return q.Relative
}

// InternalName returns the JVM internal (slash separated) form, e.g. com/example/Outer$Inner.
func (q QualifiedName) InternalName() string {
	relative := strings.ReplaceAll(q.Relative, ".", "$")

	pkg := strings.ReplaceAll(q.Package, ".", "/")
	if pkg == "" {
		return relative
	}

	return pkg + "/" + relative
}

// ParseQualifiedName parses the pkg/Relative form produced by String.
func ParseQualifiedName(value string) (QualifiedName, error) {
	i := strings.LastIndexByte(value, '/')
	if i < 0 {
		return QualifiedName{}, fmt.Errorf("qualified name %q has no package separator", value)
	}

	if i == len(value)-1 {
		return QualifiedName{}, fmt.Errorf("qualified name %q has an empty class name", value)
	}

	return QualifiedName{Package: value[:i], Relative: value[i+1:]}, nil
}

// ParseInternalName converts a JVM internal name into a QualifiedName.
func ParseInternalName(internalName string) QualifiedName {
	pkg := ""
	className := internalName

	if i := strings.LastIndexByte(internalName, '/'); i >= 0 {
		pkg = strings.ReplaceAll(internalName[:i], "/", ".")
		className = internalName[i+1:]
	}

	return QualifiedName{Package: pkg, Relative: strings.Join(splitWithDollar(className), ".")}
}

// splitWithDollar splits a class name on '$'. A dollar that starts a segment,
// ends the name or follows another dollar belongs to the segment.
func splitWithDollar(name string) []string {
	var (
		segments []string
		builder  strings.Builder
	)

	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '$' || builder.Len() == 0 || i == len(name)-1 {
			builder.WriteByte(c)
			continue
		}

		current := builder.String()
		if current[len(current)-1] == '$' {
			builder.WriteByte(c)
			continue
		}

		segments = append(segments, current)
		builder.Reset()
	}

	if builder.Len() > 0 {
		segments = append(segments, builder.String())
	}

	return segments
}

// MarshalYAML encodes the name as pkg/Relative.
func (q QualifiedName) MarshalYAML() (interface{}, error) {
	return q.String(), nil
}

// UnmarshalYAML accepts either pkg/Relative or an internal name such as com/example/Outer$Inner.
func (q *QualifiedName) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}

	slash := strings.LastIndexByte(value, '/')
	if slash < 0 || strings.Contains(value, "$") || strings.Contains(value[:slash], "/") {
		*q = ParseInternalName(value)
		return nil
	}

	parsed, err := ParseQualifiedName(value)
	if err != nil {
		return err
	}

	*q = parsed

	return nil
}

// MethodSignature identifies a JVM method within its class.
type MethodSignature struct {
	Name string
	Desc string
}

// String returns name+descriptor, e.g. foo(I)V.
func (s MethodSignature) String() string {
	return s.Name + s.Desc
}

// ParseMethodSignature splits name+descriptor at the opening parenthesis.
func ParseMethodSignature(value string) (MethodSignature, error) {
	i := strings.IndexByte(value, '(')
	if i <= 0 || !strings.Contains(value[i:], ")") {
		return MethodSignature{}, fmt.Errorf("malformed method signature %q", value)
	}

	return MethodSignature{Name: value[:i], Desc: value[i:]}, nil
}

// MarshalYAML encodes the signature as name+descriptor.
func (s MethodSignature) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes name+descriptor.
func (s *MethodSignature) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}

	parsed, err := ParseMethodSignature(value)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Lines is the sorted set of source lines a compiled body touches.
type Lines []int

// Normalize returns the lines sorted with duplicates removed.
func (l Lines) Normalize() Lines {
	if len(l) == 0 {
		return nil
	}

	sorted := make(Lines, len(l))
	copy(sorted, l)
	sort.Ints(sorted)

	out := sorted[:1]
	for _, line := range sorted[1:] {
		if line != out[len(out)-1] {
			out = append(out, line)
		}
	}

	return out
}

// Empty reports whether no line is recorded.
func (l Lines) Empty() bool {
	return len(l) == 0
}

// First returns the lowest line, or 0 when empty.
func (l Lines) First() int {
	if len(l) == 0 {
		return 0
	}

	return l[0]
}

// Last returns the highest line, or 0 when empty.
func (l Lines) Last() int {
	if len(l) == 0 {
		return 0
	}

	return l[len(l)-1]
}

package controller

import (
	"fmt"
	"strings"

	m "kover.dev/pkg/kover/internal/model"
)

const treeIndent = "  "

// RenderTree renders the declaration tree of files, one node per line.
func RenderTree(files []*m.SourceFile) string {
	var b strings.Builder

	for _, file := range files {
		fmt.Fprintf(&b, "%s\n", file.Path)

		m.WalkFile(file, m.Visitor{
			Class: func(class m.ClassLike, depth int) {
				fmt.Fprintf(&b, "%s%s %s\n", indent(depth+1), class.Kind(), className(class))
			},
			Function: func(fn m.Function, depth int) {
				fmt.Fprintf(&b, "%s%s %s%s\n", indent(depth+1), fn.Kind(), functionName(fn), lineRange(fn.Func().Lines))
			},
		})
	}

	return b.String()
}

func indent(depth int) string {
	return strings.Repeat(treeIndent, depth)
}

func className(class m.ClassLike) string {
	switch c := class.(type) {
	case *m.SimpleClass:
		return c.KotlinName.String()
	case *m.LocalClass:
		return c.Name
	}

	return class.Class().JvmName.InternalName()
}

func functionName(fn m.Function) string {
	switch f := fn.(type) {
	case *m.SimpleFunction:
		return f.Name + f.Descriptor
	case *m.LocalFunction:
		return f.Name
	}

	return fn.Func().Signature.String()
}

func lineRange(lines m.Lines) string {
	switch {
	case lines.Empty():
		return ""
	case lines.First() == lines.Last():
		return fmt.Sprintf(" [%d]", lines.First())
	}

	return fmt.Sprintf(" [%d-%d]", lines.First(), lines.Last())
}

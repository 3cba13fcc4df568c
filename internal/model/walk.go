package model

// Visitor receives every node of a composed tree. Either callback may be nil.
type Visitor struct {
	Class    func(class ClassLike, depth int)
	Function func(fn Function, depth int)
}

// WalkFile visits the facade and all classes depth first. Every class-like and
// every function is visited exactly once; DefaultImpl cross-references are not followed.
func WalkFile(file *SourceFile, visitor Visitor) {
	if file == nil {
		return
	}

	if file.Facade != nil {
		walkClass(file.Facade, visitor, 0)
	}

	for _, class := range file.Classes {
		walkClass(class, visitor, 0)
	}
}

// WalkFunction visits fn and everything declared inside it.
func WalkFunction(fn Function, visitor Visitor) {
	walkFunction(fn, visitor, 0)
}

func walkClass(class ClassLike, visitor Visitor, depth int) {
	if visitor.Class != nil {
		visitor.Class(class, depth)
	}

	if facade, ok := class.(*FileFacade); ok && facade.InitFunction != nil {
		walkFunction(facade.InitFunction, visitor, depth+1)
	}

	body := class.Class()
	for _, property := range body.Properties {
		if property.Getter != nil {
			walkFunction(property.Getter, visitor, depth+1)
		}

		if property.Setter != nil {
			walkFunction(property.Setter, visitor, depth+1)
		}
	}

	for _, fn := range body.Functions {
		walkFunction(fn, visitor, depth+1)
	}

	simple, ok := class.(*SimpleClass)
	if !ok {
		return
	}

	if simple.Companion != nil {
		walkClass(simple.Companion, visitor, depth+1)
	}

	for _, nested := range simple.Nested {
		walkClass(nested, visitor, depth+1)
	}

	if simple.DefaultImpls != nil {
		walkClass(simple.DefaultImpls, visitor, depth+1)
	}
}

func walkFunction(fn Function, visitor Visitor, depth int) {
	if visitor.Function != nil {
		visitor.Function(fn, depth)
	}

	if defaults := DefaultValuesOf(fn); defaults != nil {
		walkFunction(defaults, visitor, depth+1)
	}

	body := fn.Func()
	for _, local := range body.LocalFunctions {
		walkFunction(local, visitor, depth+1)
	}

	for _, class := range body.LocalClasses {
		walkClass(class, visitor, depth+1)
	}
}

// Signatures lists every method signature in the tree, in walk order.
func Signatures(file *SourceFile) []MethodSignature {
	var signatures []MethodSignature

	WalkFile(file, Visitor{Function: func(fn Function, _ int) {
		signatures = append(signatures, fn.Func().Signature)
	}})

	return signatures
}

// LineSet returns the union of every function's lines.
func LineSet(file *SourceFile) Lines {
	var lines Lines

	WalkFile(file, Visitor{Function: func(fn Function, _ int) {
		lines = append(lines, fn.Func().Lines...)
	}})

	return lines.Normalize()
}

// Stats counts the declarations of a composed file.
type Stats struct {
	Classes          int
	LocalClasses     int
	AnonymousClasses int
	LambdaClasses    int
	Functions        int
	LocalFunctions   int
	Anonymous        int
	Properties       int
	Lines            int
}

// CountFile walks the tree and tallies its declarations.
func CountFile(file *SourceFile) Stats {
	var stats Stats

	WalkFile(file, Visitor{
		Class: func(class ClassLike, _ int) {
			stats.Properties += len(class.Class().Properties)

			switch class.Kind() {
			case KindSimpleClass:
				stats.Classes++
			case KindLocalClass:
				stats.LocalClasses++
			case KindAnonymousClass:
				stats.AnonymousClasses++
			case KindLambdaClass:
				stats.LambdaClasses++
			case KindFileFacade:
			}
		},
		Function: func(fn Function, _ int) {
			switch fn.Kind() {
			case KindSimpleFunction:
				stats.Functions++
			case KindLocalFunction:
				stats.LocalFunctions++
			case KindAnonymousFunction:
				stats.Anonymous++
			}
		},
	})

	stats.Lines = len(LineSet(file))

	return stats
}

package adapter

import (
	m "kover.dev/pkg/kover/internal/model"
)

// StructureDocument is the YAML form of composed source files.
type StructureDocument struct {
	Files []FileStructure `yaml:"files"`
}

// FileStructure describes one source file.
type FileStructure struct {
	Path         string                      `yaml:"path"`
	Classes      []ClassStructure            `yaml:"classes,omitempty"`
	Functions    []FunctionStructure         `yaml:"functions,omitempty"`
	Properties   []PropertyStructure         `yaml:"properties,omitempty"`
	Objects      []ObjectStructure           `yaml:"objects,omitempty"`
	InitFunction *AnonymousFunctionStructure `yaml:"initFunction,omitempty"`
}

// ClassStructure describes a named class or interface.
type ClassStructure struct {
	Name           string                    `yaml:"name"`
	JvmName        string                    `yaml:"jvmName"`
	Functions      []FunctionStructure       `yaml:"functions,omitempty"`
	Constructors   []FunctionStructure       `yaml:"constructors,omitempty"`
	Properties     []PropertyStructure       `yaml:"properties,omitempty"`
	Classes        []ClassStructure          `yaml:"classes,omitempty"`
	Objects        []ObjectStructure         `yaml:"objects,omitempty"`
	IsData         bool                      `yaml:"isData,omitempty"`
	Companion      *ObjectStructure          `yaml:"companion,omitempty"`
	JvmDefaultImpl *AnonymousClassStructure `yaml:"jvmDefaultImpl,omitempty"`
}

// ObjectStructure describes a named object or companion.
type ObjectStructure struct {
	Name         string              `yaml:"name"`
	JvmName      string              `yaml:"jvmName"`
	Functions    []FunctionStructure `yaml:"functions,omitempty"`
	Constructors []FunctionStructure `yaml:"constructors,omitempty"`
	Properties   []PropertyStructure `yaml:"properties,omitempty"`
	Classes      []ClassStructure    `yaml:"classes,omitempty"`
	Objects      []ObjectStructure   `yaml:"objects,omitempty"`
	IsData       bool                `yaml:"isData,omitempty"`
}

// FunctionStructure describes a declared or local function.
type FunctionStructure struct {
	Name             string                      `yaml:"name"`
	Descriptor       string                      `yaml:"descriptor,omitempty"`
	JvmSignature     string                      `yaml:"jvmSignature"`
	Lines            []int                       `yaml:"lines,flow,omitempty"`
	JvmDefaultValues *AnonymousFunctionStructure `yaml:"jvmDefaultValues,omitempty"`
	Nested           `yaml:",inline"`
}

// AnonymousFunctionStructure describes a lambda, accessor or synthetic function.
type AnonymousFunctionStructure struct {
	JvmSignature string `yaml:"jvmSignature"`
	Lines        []int  `yaml:"lines,flow,omitempty"`
	Nested       `yaml:",inline"`
}

// Nested lists what was declared inside a function body.
type Nested struct {
	Functions          []FunctionStructure          `yaml:"functions,omitempty"`
	Classes            []LocalClassStructure        `yaml:"classes,omitempty"`
	LambdaClasses      []AnonymousClassStructure    `yaml:"lambdaClasses,omitempty"`
	AnonymousFunctions []AnonymousFunctionStructure `yaml:"anonymousFunctions,omitempty"`
	AnonymousClasses   []AnonymousClassStructure    `yaml:"anonymousClasses,omitempty"`
}

// AnonymousClassStructure describes an anonymous object, lambda class or DefaultImpls class.
type AnonymousClassStructure struct {
	JvmName      string              `yaml:"jvmName"`
	Functions    []FunctionStructure `yaml:"functions,omitempty"`
	Constructors []FunctionStructure `yaml:"constructors,omitempty"`
	Properties   []PropertyStructure `yaml:"properties,omitempty"`
}

// LocalClassStructure describes a named local class.
type LocalClassStructure struct {
	Name         string              `yaml:"name"`
	JvmName      string              `yaml:"jvmName"`
	Functions    []FunctionStructure `yaml:"functions,omitempty"`
	Constructors []FunctionStructure `yaml:"constructors,omitempty"`
	Properties   []PropertyStructure `yaml:"properties,omitempty"`
}

// PropertyStructure describes a property and its accessors.
type PropertyStructure struct {
	Name         string                      `yaml:"name"`
	IsVar        bool                        `yaml:"isVar,omitempty"`
	CustomGetter bool                        `yaml:"customGetter,omitempty"`
	CustomSetter bool                        `yaml:"customSetter,omitempty"`
	Getter       *AnonymousFunctionStructure `yaml:"getter,omitempty"`
	Setter       *AnonymousFunctionStructure `yaml:"setter,omitempty"`
}

// BuildStructure converts composed files into a StructureDocument.
func BuildStructure(files []*m.SourceFile) StructureDocument {
	doc := StructureDocument{Files: make([]FileStructure, 0, len(files))}

	for _, file := range files {
		doc.Files = append(doc.Files, fileStructure(file))
	}

	return doc
}

func fileStructure(file *m.SourceFile) FileStructure {
	result := FileStructure{Path: string(file.Path)}

	for _, class := range file.Classes {
		if class.IsObject {
			result.Objects = append(result.Objects, objectStructure(class))
		} else {
			result.Classes = append(result.Classes, classStructure(class))
		}
	}

	if file.Facade != nil {
		result.Functions = functionStructures(file.Facade.Functions)
		result.Properties = propertyStructures(file.Facade.Properties)

		if file.Facade.InitFunction != nil {
			init := anonymousFunctionStructure(file.Facade.InitFunction)
			result.InitFunction = &init
		}
	}

	return result
}

func splitConstructors(functions []*m.SimpleFunction) (regular, constructors []*m.SimpleFunction) {
	for _, fn := range functions {
		if fn.IsConstructor {
			constructors = append(constructors, fn)
		} else {
			regular = append(regular, fn)
		}
	}

	return regular, constructors
}

func splitObjects(classes []*m.SimpleClass) (nestedClasses []ClassStructure, objects []ObjectStructure) {
	for _, nested := range classes {
		if nested.IsObject {
			objects = append(objects, objectStructure(nested))
		} else {
			nestedClasses = append(nestedClasses, classStructure(nested))
		}
	}

	return nestedClasses, objects
}

func classStructure(class *m.SimpleClass) ClassStructure {
	regular, constructors := splitConstructors(class.Functions)
	nestedClasses, objects := splitObjects(class.Nested)

	result := ClassStructure{
		Name:         class.KotlinName.String(),
		JvmName:      class.JvmName.InternalName(),
		Functions:    functionStructures(regular),
		Constructors: functionStructures(constructors),
		Properties:   propertyStructures(class.Properties),
		Classes:      nestedClasses,
		Objects:      objects,
		IsData:       class.IsData,
	}

	if class.Companion != nil {
		companion := objectStructure(class.Companion)
		result.Companion = &companion
	}

	if class.DefaultImpls != nil {
		defaultImpls := anonymousClassStructure(class.DefaultImpls.Class(), true)
		result.JvmDefaultImpl = &defaultImpls
	}

	return result
}

func objectStructure(class *m.SimpleClass) ObjectStructure {
	regular, constructors := splitConstructors(class.Functions)
	nestedClasses, objects := splitObjects(class.Nested)

	return ObjectStructure{
		Name:         class.KotlinName.LastSegment(),
		JvmName:      class.JvmName.InternalName(),
		Functions:    functionStructures(regular),
		Constructors: functionStructures(constructors),
		Properties:   propertyStructures(class.Properties),
		Classes:      nestedClasses,
		Objects:      objects,
		IsData:       class.IsData,
	}
}

func anonymousClassStructure(body *m.ClassBody, splitCtors bool) AnonymousClassStructure {
	regular, constructors := body.Functions, []*m.SimpleFunction(nil)
	if splitCtors {
		regular, constructors = splitConstructors(body.Functions)
	}

	return AnonymousClassStructure{
		JvmName:      body.JvmName.InternalName(),
		Functions:    functionStructures(regular),
		Constructors: functionStructures(constructors),
		Properties:   propertyStructures(body.Properties),
	}
}

func localClassStructure(class *m.LocalClass) LocalClassStructure {
	regular, constructors := splitConstructors(class.Functions)

	return LocalClassStructure{
		Name:         class.Name,
		JvmName:      class.JvmName.InternalName(),
		Functions:    functionStructures(regular),
		Constructors: functionStructures(constructors),
		Properties:   propertyStructures(class.Properties),
	}
}

func propertyStructures(properties []*m.Property) []PropertyStructure {
	result := make([]PropertyStructure, 0, len(properties))

	for _, property := range properties {
		structure := PropertyStructure{
			Name:         property.Name,
			IsVar:        property.IsVar,
			CustomGetter: property.CustomGetter,
			CustomSetter: property.CustomSetter,
		}

		if property.Getter != nil {
			getter := anonymousFunctionStructure(property.Getter)
			structure.Getter = &getter
		}

		if property.Setter != nil {
			setter := anonymousFunctionStructure(property.Setter)
			structure.Setter = &setter
		}

		result = append(result, structure)
	}

	return result
}

func functionStructures(functions []*m.SimpleFunction) []FunctionStructure {
	result := make([]FunctionStructure, 0, len(functions))

	for _, fn := range functions {
		result = append(result, FunctionStructure{
			Name:             fn.Name,
			Descriptor:       fn.Descriptor,
			JvmSignature:     fn.Signature.String(),
			Lines:            fn.Lines,
			JvmDefaultValues: defaultValuesStructure(fn.DefaultValues),
			Nested:           nestedStructure(&fn.FunctionBody),
		})
	}

	return result
}

func defaultValuesStructure(fn *m.AnonymousFunction) *AnonymousFunctionStructure {
	if fn == nil {
		return nil
	}

	structure := anonymousFunctionStructure(fn)

	return &structure
}

func anonymousFunctionStructure(fn *m.AnonymousFunction) AnonymousFunctionStructure {
	return AnonymousFunctionStructure{
		JvmSignature: fn.Signature.String(),
		Lines:        fn.Lines,
		Nested:       nestedStructure(&fn.FunctionBody),
	}
}

func nestedStructure(body *m.FunctionBody) Nested {
	var nested Nested

	for _, local := range body.LocalFunctions {
		switch fn := local.(type) {
		case *m.LocalFunction:
			nested.Functions = append(nested.Functions, FunctionStructure{
				Name:             fn.Name,
				JvmSignature:     fn.Signature.String(),
				Lines:            fn.Lines,
				JvmDefaultValues: defaultValuesStructure(fn.DefaultValues),
				Nested:           nestedStructure(&fn.FunctionBody),
			})
		case *m.AnonymousFunction:
			nested.AnonymousFunctions = append(nested.AnonymousFunctions, anonymousFunctionStructure(fn))
		case *m.SimpleFunction:
			nested.Functions = append(nested.Functions, functionStructures([]*m.SimpleFunction{fn})...)
		}
	}

	for _, local := range body.LocalClasses {
		switch class := local.(type) {
		case *m.LocalClass:
			nested.Classes = append(nested.Classes, localClassStructure(class))
		case *m.LambdaClass:
			nested.LambdaClasses = append(nested.LambdaClasses, anonymousClassStructure(class.Class(), false))
		case *m.AnonymousClass:
			nested.AnonymousClasses = append(nested.AnonymousClasses, anonymousClassStructure(class.Class(), true))
		}
	}

	return nested
}

package model

// FileInitial holds every record the class-file reader produced for one source file.
type FileInitial struct {
	Path            Path                       `yaml:"path"`
	FacadeClassName *QualifiedName             `yaml:"facade,omitempty"`
	InitFunction    *AnonymousFunctionInitial  `yaml:"init,omitempty"`
	Classes         []KotlinClassInitial       `yaml:"classes,omitempty"`
	Functions       []SimpleFunctionInitial    `yaml:"functions,omitempty"`
	LocalFunctions  []AnonymousFunctionInitial `yaml:"localFunctions,omitempty"`
	Properties      []PropertyInitial          `yaml:"properties,omitempty"`
	LocalClasses    []LocalClassInitial        `yaml:"localClasses,omitempty"`
	DefaultImpls    []DefaultImplsInitial      `yaml:"defaultImpls,omitempty"`
}

// KotlinClassInitial is a named, non-local class.
type KotlinClassInitial struct {
	KotlinName                  QualifiedName              `yaml:"name"`
	JvmName                     QualifiedName              `yaml:"jvmName"`
	IsObject                    bool                       `yaml:"object,omitempty"`
	IsData                      bool                       `yaml:"data,omitempty"`
	IsInterfaceWithDefaultImpls bool                       `yaml:"defaultImplsInterface,omitempty"`
	CompanionName               string                     `yaml:"companion,omitempty"`
	Functions                   []SimpleFunctionInitial    `yaml:"functions,omitempty"`
	Constructors                []SimpleFunctionInitial    `yaml:"constructors,omitempty"`
	LocalFunctions              []AnonymousFunctionInitial `yaml:"localFunctions,omitempty"`
	Properties                  []PropertyInitial          `yaml:"properties,omitempty"`
}

// LocalClassInitial is a class declared inside a function body: a named local
// class, an anonymous object or a lambda class.
type LocalClassInitial struct {
	OuterClass     string                     `yaml:"outerClass"`
	OuterMethod    *MethodSignature           `yaml:"outerMethod,omitempty"`
	JvmName        QualifiedName              `yaml:"jvmName"`
	IsLambda       bool                       `yaml:"lambda,omitempty"`
	Functions      []SimpleFunctionInitial    `yaml:"functions,omitempty"`
	Constructors   []SimpleFunctionInitial    `yaml:"constructors,omitempty"`
	LocalFunctions []AnonymousFunctionInitial `yaml:"localFunctions,omitempty"`
	Properties     []PropertyInitial          `yaml:"properties,omitempty"`
}

// SimpleFunctionInitial is a declared function or constructor.
type SimpleFunctionInitial struct {
	Name            string          `yaml:"name"`
	Receiver        string          `yaml:"receiver,omitempty"`
	Context         []string        `yaml:"context,omitempty"`
	ValueParameters []string        `yaml:"parameters,omitempty"`
	Signature       MethodSignature `yaml:"signature"`
	Lines           Lines           `yaml:"lines,flow,omitempty"`
}

// AnonymousFunctionInitial is a compiled method with no source-level declaration
// of its own: local functions, lambdas, accessors, default-value wrappers.
type AnonymousFunctionInitial struct {
	Signature MethodSignature `yaml:"signature"`
	Lines     Lines           `yaml:"lines,flow,omitempty"`
	// OuterMethod is set when the reader already knows the enclosing method.
	OuterMethod *MethodSignature `yaml:"outerMethod,omitempty"`
}

// PropertyInitial is a declared property with its compiled accessors.
type PropertyInitial struct {
	Name         string                    `yaml:"name"`
	IsVar        bool                      `yaml:"var,omitempty"`
	CustomGetter bool                      `yaml:"customGetter,omitempty"`
	CustomSetter bool                      `yaml:"customSetter,omitempty"`
	Getter       *AnonymousFunctionInitial `yaml:"getter,omitempty"`
	Setter       *AnonymousFunctionInitial `yaml:"setter,omitempty"`
}

// DefaultImplsInitial is the synthetic class holding an interface's default method bodies.
type DefaultImplsInitial struct {
	JvmName   QualifiedName              `yaml:"jvmName"`
	Functions []AnonymousFunctionInitial `yaml:"functions,omitempty"`
}

package model

// SourceFile is the composed declaration tree of one source file.
type SourceFile struct {
	Path    Path
	Classes []*SimpleClass
	Facade  *FileFacade
}

// ClassKind tags the variants of ClassLike.
type ClassKind int

// Available ClassKind values.
const (
	KindSimpleClass ClassKind = iota
	KindLocalClass
	KindAnonymousClass
	KindLambdaClass
	KindFileFacade
)

func (k ClassKind) String() string {
	switch k {
	case KindSimpleClass:
		return "class"
	case KindLocalClass:
		return "local class"
	case KindAnonymousClass:
		return "anonymous class"
	case KindLambdaClass:
		return "lambda class"
	case KindFileFacade:
		return "file facade"
	}

	return "unknown"
}

// ClassLike is implemented by SimpleClass, LocalClass, AnonymousClass,
// LambdaClass and FileFacade only.
type ClassLike interface {
	Kind() ClassKind
	Class() *ClassBody
	sealedClass()
}

// LocalClassLike is a ClassLike declared inside a function body.
type LocalClassLike interface {
	ClassLike
	Owner() Owner
}

// ClassBody holds the members every class-like owns.
type ClassBody struct {
	JvmName    QualifiedName
	Functions  []*SimpleFunction
	Properties []*Property
}

// Class returns the shared members.
func (b *ClassBody) Class() *ClassBody { return b }

// Owner names the class and method a local class was declared in.
type Owner struct {
	OuterClass  string
	OuterMethod *MethodSignature
}

// SimpleClass is a named class, object or interface.
type SimpleClass struct {
	ClassBody
	KotlinName                  QualifiedName
	IsObject                    bool
	IsData                      bool
	IsInterfaceWithDefaultImpls bool
	CompanionName               string
	Companion                   *SimpleClass
	Nested                      []*SimpleClass
	// DefaultImpls holds the default method bodies merged from the interface's DefaultImpls class.
	DefaultImpls *SimpleClass
}

// LocalClass is a named class declared in a function body.
type LocalClass struct {
	ClassBody
	Name  string
	Owned Owner
}

// AnonymousClass is an anonymous object expression.
type AnonymousClass struct {
	ClassBody
	Owned Owner
}

// LambdaClass is a lambda compiled into its own class.
type LambdaClass struct {
	ClassBody
	Owned Owner
}

// FileFacade holds a file's top-level functions and properties.
type FileFacade struct {
	ClassBody
	InitFunction *AnonymousFunction
}

func (*SimpleClass) Kind() ClassKind    { return KindSimpleClass }
func (*LocalClass) Kind() ClassKind     { return KindLocalClass }
func (*AnonymousClass) Kind() ClassKind { return KindAnonymousClass }
func (*LambdaClass) Kind() ClassKind    { return KindLambdaClass }
func (*FileFacade) Kind() ClassKind     { return KindFileFacade }

func (*SimpleClass) sealedClass()    {}
func (*LocalClass) sealedClass()     {}
func (*AnonymousClass) sealedClass() {}
func (*LambdaClass) sealedClass()    {}
func (*FileFacade) sealedClass()     {}

func (c *LocalClass) Owner() Owner     { return c.Owned }
func (c *AnonymousClass) Owner() Owner { return c.Owned }
func (c *LambdaClass) Owner() Owner    { return c.Owned }

// FunctionKind tags the variants of Function.
type FunctionKind int

// Available FunctionKind values.
const (
	KindSimpleFunction FunctionKind = iota
	KindLocalFunction
	KindAnonymousFunction
)

func (k FunctionKind) String() string {
	switch k {
	case KindSimpleFunction:
		return "function"
	case KindLocalFunction:
		return "local function"
	case KindAnonymousFunction:
		return "anonymous function"
	}

	return "unknown"
}

// Function is implemented by SimpleFunction, LocalFunction and AnonymousFunction only.
type Function interface {
	Kind() FunctionKind
	Func() *FunctionBody
	sealedFunction()
}

// FunctionBody holds what every function owns: its own lines and the
// functions and classes declared inside it.
type FunctionBody struct {
	Signature      MethodSignature
	Lines          Lines
	LocalFunctions []Function
	LocalClasses   []LocalClassLike
}

// Func returns the shared body.
func (b *FunctionBody) Func() *FunctionBody { return b }

// SimpleFunction is a declared member or top-level function, or a constructor.
type SimpleFunction struct {
	FunctionBody
	Name          string
	IsConstructor bool
	Descriptor    string
	DefaultValues *AnonymousFunction
	// DefaultImpl points at the forwarder in the owner's DefaultImpls class.
	// It is a cross-reference; tree walks do not follow it.
	DefaultImpl *SimpleFunction
}

// LocalFunction is a named function declared in another function's body.
type LocalFunction struct {
	FunctionBody
	Name          string
	DefaultValues *AnonymousFunction
}

// AnonymousFunction is a lambda, an accessor, a default-values wrapper or a static initializer.
type AnonymousFunction struct {
	FunctionBody
}

func (*SimpleFunction) Kind() FunctionKind    { return KindSimpleFunction }
func (*LocalFunction) Kind() FunctionKind     { return KindLocalFunction }
func (*AnonymousFunction) Kind() FunctionKind { return KindAnonymousFunction }

func (*SimpleFunction) sealedFunction()    {}
func (*LocalFunction) sealedFunction()     {}
func (*AnonymousFunction) sealedFunction() {}

// Property is a declared property and its accessors.
type Property struct {
	Name         string
	IsVar        bool
	CustomGetter bool
	CustomSetter bool
	Getter       *AnonymousFunction
	Setter       *AnonymousFunction
	// DefaultImpl points at the accessor forwarders merged from DefaultImpls.
	DefaultImpl *Property
}

// DefaultValuesOf returns the default-values wrapper of a function, if it can have one.
func DefaultValuesOf(fn Function) *AnonymousFunction {
	switch f := fn.(type) {
	case *SimpleFunction:
		return f.DefaultValues
	case *LocalFunction:
		return f.DefaultValues
	case *AnonymousFunction:
		return nil
	}

	return nil
}

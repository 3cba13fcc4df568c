// Package domain rebuilds source-level declarations from the flat per-method
// records produced by the class-file reader, and orchestrates doing so for many files.
package domain

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	m "kover.dev/pkg/kover/internal/model"
)

// Composer turns the initial records of one source file into its declaration tree.
type Composer interface {
	Compose(file m.FileInitial) (*m.SourceFile, error)
}

type composer struct{}

// NewComposer creates a Composer. It holds no state, so one instance may be
// shared by any number of goroutines.
func NewComposer() Composer {
	return &composer{}
}

// Compose builds the tree for one file. It fails with a *ComposeError as soon as
// a record cannot be placed; no partial tree is returned.
func (c *composer) Compose(file m.FileInitial) (*m.SourceFile, error) {
	result, err := compose(file)
	if err != nil {
		var composeErr *ComposeError
		if errors.As(err, &composeErr) && composeErr.Path == "" {
			composeErr.Path = file.Path
		}

		slog.Debug("Failed to compose file", "path", file.Path, "error", err)

		return nil, err
	}

	slog.Debug("Composed file", "path", file.Path, "classes", len(result.Classes), "facade", result.Facade != nil)

	return result, nil
}

func compose(file m.FileInitial) (*m.SourceFile, error) {
	var facade *m.FileFacade

	if file.FacadeClassName != nil {
		composed, err := composeFacade(file)
		if err != nil {
			return nil, err
		}

		facade = composed
	}

	localClasses := make([]m.LocalClassLike, 0, len(file.LocalClasses))

	for _, initial := range file.LocalClasses {
		local, err := composeLocalClass(initial)
		if err != nil {
			return nil, err
		}

		localClasses = append(localClasses, local)
	}

	simpleClasses := make([]*m.SimpleClass, 0, len(file.Classes))

	for _, initial := range file.Classes {
		simple, err := composeClass(initial)
		if err != nil {
			return nil, err
		}

		simpleClasses = append(simpleClasses, simple)
	}

	// DefaultImpls classes are merged before indexing so lambdas and anonymous
	// objects declared in default method bodies can find their owner.
	defaultImpls, err := mergeDefaultImpls(simpleClasses, file.DefaultImpls)
	if err != nil {
		return nil, err
	}

	allClasses := indexClasses(localClasses, simpleClasses, facade, defaultImpls)

	if err := attachLocalClasses(allClasses, localClasses); err != nil {
		return nil, err
	}

	if err := attachNestedClasses(simpleClasses); err != nil {
		return nil, err
	}

	if err := attachCompanions(simpleClasses); err != nil {
		return nil, err
	}

	if err := foldAllDefaultValues(allClasses); err != nil {
		return nil, err
	}

	return &m.SourceFile{
		Path:    file.Path,
		Classes: topLevelClasses(simpleClasses),
		Facade:  facade,
	}, nil
}

func topLevelClasses(simpleClasses []*m.SimpleClass) []*m.SimpleClass {
	topLevel := make([]*m.SimpleClass, 0, len(simpleClasses))

	for _, simple := range simpleClasses {
		if !strings.Contains(simple.KotlinName.Relative, ".") {
			topLevel = append(topLevel, simple)
		}
	}

	return topLevel
}

func indexClasses(
	localClasses []m.LocalClassLike,
	simpleClasses []*m.SimpleClass,
	facade *m.FileFacade,
	defaultImpls []*m.SimpleClass,
) []m.ClassLike {
	all := make([]m.ClassLike, 0, len(localClasses)+len(simpleClasses)+len(defaultImpls)+1)

	for _, local := range localClasses {
		all = append(all, local)
	}

	for _, simple := range simpleClasses {
		all = append(all, simple)
	}

	if facade != nil {
		all = append(all, facade)
	}

	for _, merged := range defaultImpls {
		all = append(all, merged)
	}

	return all
}

func composeFacade(file m.FileInitial) (*m.FileFacade, error) {
	facade := &m.FileFacade{ClassBody: m.ClassBody{JvmName: *file.FacadeClassName}}

	facade.Properties = composeProperties(file.Properties)
	facade.Functions = composeFunctions(file.Functions, false)

	if file.InitFunction != nil {
		facade.InitFunction = composeAnonymous(*file.InitFunction)
	}

	pool := collectFunctionsForLocal(facade.Functions, facade.Properties)
	if err := foldLocalFunctions(pool, file.LocalFunctions); err != nil {
		return nil, err
	}

	return facade, nil
}

func composeClass(initial m.KotlinClassInitial) (*m.SimpleClass, error) {
	simple := &m.SimpleClass{
		ClassBody:                   m.ClassBody{JvmName: initial.JvmName},
		KotlinName:                  initial.KotlinName,
		IsObject:                    initial.IsObject,
		IsData:                      initial.IsData,
		IsInterfaceWithDefaultImpls: initial.IsInterfaceWithDefaultImpls,
		CompanionName:               initial.CompanionName,
	}

	simple.Properties = composeProperties(initial.Properties)
	simple.Functions = append(composeFunctions(initial.Functions, false), composeFunctions(initial.Constructors, true)...)

	pool := collectFunctionsForLocal(simple.Functions, simple.Properties)
	if err := foldLocalFunctions(pool, initial.LocalFunctions); err != nil {
		return nil, err
	}

	return simple, nil
}

func composeLocalClass(initial m.LocalClassInitial) (m.LocalClassLike, error) {
	body := m.ClassBody{JvmName: initial.JvmName}
	body.Properties = composeProperties(initial.Properties)
	body.Functions = append(composeFunctions(initial.Functions, false), composeFunctions(initial.Constructors, true)...)

	pool := collectFunctionsForLocal(body.Functions, body.Properties)
	if err := foldLocalFunctions(pool, initial.LocalFunctions); err != nil {
		return nil, err
	}

	owner := m.Owner{OuterClass: initial.OuterClass, OuterMethod: initial.OuterMethod}

	switch {
	case initial.IsLambda:
		return &m.LambdaClass{ClassBody: body, Owned: owner}, nil
	case IsAnonymousLocalClass(initial):
		return &m.AnonymousClass{ClassBody: body, Owned: owner}, nil
	default:
		return &m.LocalClass{ClassBody: body, Name: initial.JvmName.LastSegment(), Owned: owner}, nil
	}
}

func composeProperties(initials []m.PropertyInitial) []*m.Property {
	properties := make([]*m.Property, 0, len(initials))

	for _, initial := range initials {
		property := &m.Property{
			Name:         initial.Name,
			IsVar:        initial.IsVar,
			CustomGetter: initial.CustomGetter,
			CustomSetter: initial.CustomSetter,
		}

		if initial.Getter != nil {
			property.Getter = composeAnonymous(*initial.Getter)
		}

		if initial.Setter != nil {
			property.Setter = composeAnonymous(*initial.Setter)
		}

		properties = append(properties, property)
	}

	return properties
}

func composeFunctions(initials []m.SimpleFunctionInitial, isConstructor bool) []*m.SimpleFunction {
	functions := make([]*m.SimpleFunction, 0, len(initials))

	for _, initial := range initials {
		name := initial.Name
		if name == "" && isConstructor {
			name = m.ConstructorName
		}

		functions = append(functions, &m.SimpleFunction{
			FunctionBody:  m.FunctionBody{Signature: initial.Signature, Lines: initial.Lines},
			Name:          name,
			IsConstructor: isConstructor,
			Descriptor:    formatDescriptor(initial),
		})
	}

	return functions
}

func composeAnonymous(initial m.AnonymousFunctionInitial) *m.AnonymousFunction {
	return &m.AnonymousFunction{FunctionBody: m.FunctionBody{Signature: initial.Signature, Lines: initial.Lines}}
}

// formatDescriptor renders the source-level parameter list, e.g. context(Ctx) Recv.(Int, String).
func formatDescriptor(initial m.SimpleFunctionInitial) string {
	var b strings.Builder

	if len(initial.Context) > 0 {
		b.WriteString("context(")
		b.WriteString(strings.Join(initial.Context, ", "))
		b.WriteString(") ")
	}

	if initial.Receiver != "" {
		b.WriteString(initial.Receiver)
		b.WriteString(".")
	}

	b.WriteString("(")
	b.WriteString(strings.Join(initial.ValueParameters, ", "))
	b.WriteString(")")

	return b.String()
}

// collectFunctionsForLocal indexes functions and accessors under the names the
// compiler prefixes their local functions with.
func collectFunctionsForLocal(functions []*m.SimpleFunction, properties []*m.Property) *functionPool {
	pool := newFunctionPool()

	for _, fn := range functions {
		name := fn.Name
		if fn.IsConstructor || name == m.ConstructorName {
			name = m.ConstructorNameInLocalFn
		}

		pool.add(name, fn)
	}

	for _, property := range properties {
		if property.Getter != nil {
			pool.add(m.GetterNameInLocalFn(property.Name), property.Getter)
		}

		if property.Setter != nil {
			pool.add(m.SetterNameInLocalFn(property.Name), property.Setter)
		}
	}

	return pool
}

// foldLocalFunctions places every local function under its enclosing function.
// Shorter names go first; each placed function joins the pool so deeper lambdas can find it.
func foldLocalFunctions(pool *functionPool, initials []m.AnonymousFunctionInitial) error {
	ordered := make([]m.AnonymousFunctionInitial, len(initials))
	copy(ordered, initials)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Signature.Name) < len(ordered[j].Signature.Name)
	})

	for _, initial := range ordered {
		candidates, key := pool.candidates(initial)
		if len(candidates) == 0 {
			return composeErrorf(UnresolvedEnclosingFunction, initial.Signature.String(), "no candidate function")
		}

		outer := ResolveEnclosingFunction(candidates, initial.Lines)
		if outer == nil {
			return composeErrorf(UnresolvedEnclosingFunction, initial.Signature.String(),
				"%d candidates under %q, none encloses lines %d-%d",
				len(candidates), key, initial.Lines.First(), initial.Lines.Last())
		}

		var local m.Function

		body := m.FunctionBody{Signature: initial.Signature, Lines: initial.Lines}
		if IsNamedLikeLambda(initial.Signature.Name) {
			local = &m.AnonymousFunction{FunctionBody: body}
		} else {
			local = &m.LocalFunction{FunctionBody: body, Name: localFunctionName(initial.Signature.Name, outer, key)}
		}

		outerBody := outer.Func()
		outerBody.LocalFunctions = append(outerBody.LocalFunctions, local)
		pool.add(initial.Signature.Name, local)
	}

	return nil
}

func localFunctionName(name string, outer m.Function, key string) string {
	if trimmed := strings.TrimPrefix(name, outer.Func().Signature.Name+"$"); trimmed != name {
		return trimmed
	}

	if key != "" {
		return strings.TrimPrefix(name, key+"$")
	}

	return name
}

func mergeDefaultImpls(simpleClasses []*m.SimpleClass, initials []m.DefaultImplsInitial) ([]*m.SimpleClass, error) {
	byInternalName := make(map[string]*m.SimpleClass, len(simpleClasses))
	for _, simple := range simpleClasses {
		byInternalName[simple.JvmName.InternalName()] = simple
	}

	merged := make([]*m.SimpleClass, 0, len(initials))

	for _, initial := range initials {
		outerName := strings.TrimSuffix(initial.JvmName.InternalName(), "$"+m.DefaultImplsClassName)

		iface, ok := byInternalName[outerName]
		if !ok {
			return nil, composeErrorf(OrphanedDefaultImpl, initial.JvmName.String(), "interface %s not found", outerName)
		}

		if iface.DefaultImpls != nil {
			return nil, composeErrorf(OrphanedDefaultImpl, initial.JvmName.String(), "interface %s already has DefaultImpls", outerName)
		}

		result, err := mergeDefaultImplsInto(iface, initial)
		if err != nil {
			return nil, err
		}

		iface.DefaultImpls = result
		merged = append(merged, result)
	}

	return merged, nil
}

func mergeDefaultImplsInto(iface *m.SimpleClass, initial m.DefaultImplsInitial) (*m.SimpleClass, error) {
	result := &m.SimpleClass{
		ClassBody:  m.ClassBody{JvmName: initial.JvmName},
		KotlinName: initial.JvmName,
	}

	used := make([]bool, len(initial.Functions))
	take := func(signature m.MethodSignature) *m.AnonymousFunctionInitial {
		for i := range initial.Functions {
			if !used[i] && initial.Functions[i].Signature == signature {
				used[i] = true
				return &initial.Functions[i]
			}
		}

		return nil
	}

	for _, fn := range iface.Functions {
		forwarder := take(ToInterfaceForwarderSignature(fn.Signature, iface.JvmName))
		if forwarder == nil {
			continue
		}

		merged := &m.SimpleFunction{
			FunctionBody:  m.FunctionBody{Signature: forwarder.Signature, Lines: forwarder.Lines},
			Name:          fn.Name,
			IsConstructor: fn.IsConstructor,
		}
		result.Functions = append(result.Functions, merged)
		fn.DefaultImpl = merged
	}

	for _, property := range iface.Properties {
		var getter, setter *m.AnonymousFunction

		if property.Getter != nil {
			if forwarder := take(ToInterfaceForwarderSignature(property.Getter.Signature, iface.JvmName)); forwarder != nil {
				getter = composeAnonymous(*forwarder)
			}
		}

		if property.Setter != nil {
			if forwarder := take(ToInterfaceForwarderSignature(property.Setter.Signature, iface.JvmName)); forwarder != nil {
				setter = composeAnonymous(*forwarder)
			}
		}

		if getter == nil && setter == nil {
			continue
		}

		merged := &m.Property{
			Name:         property.Name,
			IsVar:        property.IsVar,
			CustomGetter: property.CustomGetter,
			CustomSetter: property.CustomSetter,
			Getter:       getter,
			Setter:       setter,
		}
		result.Properties = append(result.Properties, merged)
		property.DefaultImpl = merged
	}

	var leftovers []m.AnonymousFunctionInitial

	for i, forwarder := range initial.Functions {
		if !used[i] {
			leftovers = append(leftovers, forwarder)
		}
	}

	pool := collectFunctionsForLocal(result.Functions, result.Properties)
	if err := foldLocalFunctions(pool, leftovers); err != nil {
		if errors.Is(err, ErrUnresolvedEnclosingFunction) {
			var composeErr *ComposeError
			errors.As(err, &composeErr)

			return nil, composeErrorf(OrphanedDefaultImpl, composeErr.Subject,
				"no method of %s is forwarded by it", iface.KotlinName)
		}

		return nil, err
	}

	return result, nil
}

// attachLocalClasses hands every local class to the class-like named as its owner.
func attachLocalClasses(allClasses []m.ClassLike, localClasses []m.LocalClassLike) error {
	byOuterClass := make(map[string][]m.LocalClassLike)
	for _, local := range localClasses {
		outer := local.Owner().OuterClass
		byOuterClass[outer] = append(byOuterClass[outer], local)
	}

	for _, class := range allClasses {
		internalName := class.Class().JvmName.InternalName()

		group, ok := byOuterClass[internalName]
		if !ok {
			continue
		}

		delete(byOuterClass, internalName)

		if err := attachToFunctions(class, group); err != nil {
			return err
		}
	}

	for _, local := range localClasses {
		if _, orphaned := byOuterClass[local.Owner().OuterClass]; orphaned {
			return composeErrorf(OrphanedLocalClass, local.Class().JvmName.String(),
				"owner %s not found", local.Owner().OuterClass)
		}
	}

	return nil
}

func attachToFunctions(class m.ClassLike, localClasses []m.LocalClassLike) error {
	bySignature := make(map[m.MethodSignature]m.Function)
	collect := func(fn m.Function) {
		m.WalkFunction(fn, m.Visitor{Function: func(inner m.Function, _ int) {
			bySignature[inner.Func().Signature] = inner
		}})
	}

	body := class.Class()
	for _, fn := range body.Functions {
		collect(fn)
	}

	for _, property := range body.Properties {
		if property.Getter != nil {
			collect(property.Getter)
		}

		if property.Setter != nil {
			collect(property.Setter)
		}
	}

	facade, isFacade := class.(*m.FileFacade)
	if isFacade && facade.InitFunction != nil {
		collect(facade.InitFunction)
	}

	for _, local := range localClasses {
		owner := local.Owner()

		var fn m.Function

		switch {
		case owner.OuterMethod != nil:
			fn = bySignature[*owner.OuterMethod]
		case isFacade && facade.InitFunction != nil:
			fn = facade.InitFunction
		}

		if fn == nil {
			method := "<static initializer>"
			if owner.OuterMethod != nil {
				method = owner.OuterMethod.String()
			}

			return composeErrorf(OrphanedLocalClass, local.Class().JvmName.String(),
				"method %s not found in %s", method, owner.OuterClass)
		}

		fnBody := fn.Func()
		fnBody.LocalClasses = append(fnBody.LocalClasses, local)
	}

	return nil
}

// attachNestedClasses nests classes by their dotted names, shallow ones first.
func attachNestedClasses(simpleClasses []*m.SimpleClass) error {
	byRelativeName := make(map[string]*m.SimpleClass, len(simpleClasses))
	for _, simple := range simpleClasses {
		byRelativeName[simple.KotlinName.Relative] = simple
	}

	ordered := make([]*m.SimpleClass, len(simpleClasses))
	copy(ordered, simpleClasses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].KotlinName.Segments()) < len(ordered[j].KotlinName.Segments())
	})

	for _, simple := range ordered {
		relative := simple.KotlinName.Relative

		i := strings.LastIndexByte(relative, '.')
		if i < 0 {
			continue
		}

		parent, ok := byRelativeName[relative[:i]]
		if !ok {
			return composeErrorf(OrphanedNestedClass, simple.KotlinName.String(), "parent %s not found", relative[:i])
		}

		parent.Nested = append(parent.Nested, simple)
	}

	return nil
}

func attachCompanions(simpleClasses []*m.SimpleClass) error {
	for _, simple := range simpleClasses {
		if simple.CompanionName == "" {
			continue
		}

		companionName := simple.KotlinName.Relative + "." + simple.CompanionName

		index := -1

		for i, nested := range simple.Nested {
			if nested.KotlinName.Relative == companionName {
				index = i
				break
			}
		}

		if index < 0 {
			return composeErrorf(OrphanedCompanion, simple.KotlinName.String(), "companion %s not found", companionName)
		}

		simple.Companion = simple.Nested[index]
		simple.Nested = append(simple.Nested[:index:index], simple.Nested[index+1:]...)
	}

	return nil
}

func foldAllDefaultValues(allClasses []m.ClassLike) error {
	for _, class := range allClasses {
		body := class.Class()

		for _, fn := range body.Functions {
			if err := foldDefaultValues(fn); err != nil {
				return err
			}
		}

		for _, property := range body.Properties {
			for _, accessor := range []*m.AnonymousFunction{property.Getter, property.Setter} {
				if accessor == nil {
					continue
				}

				if err := foldDefaultValues(accessor); err != nil {
					return err
				}
			}
		}

		if facade, ok := class.(*m.FileFacade); ok && facade.InitFunction != nil {
			if err := foldDefaultValues(facade.InitFunction); err != nil {
				return err
			}
		}
	}

	return nil
}

// foldDefaultValues absorbs the default-values wrapper of fn and of every local function inside it.
func foldDefaultValues(fn m.Function) error {
	body := fn.Func()

	for _, local := range body.LocalFunctions {
		if err := foldDefaultValues(local); err != nil {
			return err
		}
	}

	if fn.Kind() == m.KindAnonymousFunction || len(body.LocalFunctions) == 0 {
		return nil
	}

	wrapper, err := FindDefaultValueFunction(fn)
	if err != nil || wrapper == nil {
		return err
	}

	wrapperBody := wrapper.Func()
	defaults := &m.AnonymousFunction{FunctionBody: m.FunctionBody{
		Signature:      wrapperBody.Signature,
		Lines:          wrapperBody.Lines,
		LocalFunctions: wrapperBody.LocalFunctions,
		LocalClasses:   wrapperBody.LocalClasses,
	}}

	switch f := fn.(type) {
	case *m.SimpleFunction:
		f.DefaultValues = defaults
	case *m.LocalFunction:
		f.DefaultValues = defaults
	case *m.AnonymousFunction:
	}

	remaining := make([]m.Function, 0, len(body.LocalFunctions)-1)

	for _, local := range body.LocalFunctions {
		if local != wrapper {
			remaining = append(remaining, local)
		}
	}

	body.LocalFunctions = remaining

	return nil
}

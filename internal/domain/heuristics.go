package domain

import (
	"sort"
	"strings"

	m "kover.dev/pkg/kover/internal/model"
)

const (
	defaultSuffix            = "$default"
	lambdaMarker             = "$lambda$"
	defaultMaskParameter     = "I"
	defaultHandlerParameter  = "Ljava/lang/Object;"
	defaultConstructorMarker = "kotlin/jvm/internal/DefaultConstructorMarker"
)

// IsNamedLikeLambda reports whether a compiled method name has the a$lambda$N shape.
// For function a() a lambda is named a$lambda$1, inside local function a$b it is a$b$lambda$1.
func IsNamedLikeLambda(name string) bool {
	i := strings.LastIndexByte(name, '$')
	if i < 0 {
		return false
	}

	last := name[i+1:]
	if !isNumeric(last) {
		return false
	}

	return strings.Count(name, "$") >= 2 && strings.HasSuffix(name, lambdaMarker+last)
}

// IsAnonymousLocalClass reports whether a local class is an anonymous object:
// its last name segment is numeric and the one before it is the owning method's name.
func IsAnonymousLocalClass(local m.LocalClassInitial) bool {
	segments := local.JvmName.Segments()
	if len(segments) < 2 || !isNumeric(segments[len(segments)-1]) {
		return false
	}

	return local.OuterMethod != nil && segments[len(segments)-2] == local.OuterMethod.Name
}

// FindDefaultValueFunction looks among fn's local functions for the wrapper the
// compiler generates to fill default argument values. Functions use
// name$default(..., I, Ljava/lang/Object;); constructors use
// <init>(..., I, Lkotlin/jvm/internal/DefaultConstructorMarker;).
func FindDefaultValueFunction(fn m.Function) (m.Function, error) {
	signature := fn.Func().Signature

	var matches func(candidate m.MethodSignature) bool

	if simple, ok := fn.(*m.SimpleFunction); ok && simple.IsConstructor {
		searchedDesc := strings.Replace(signature.Desc, ")", defaultMaskParameter+m.Reference(defaultConstructorMarker)+")", 1)
		matches = func(candidate m.MethodSignature) bool {
			return candidate.Name == signature.Name && candidate.Desc == searchedDesc
		}
	} else {
		searchedName := signature.Name + defaultSuffix
		searchedDesc := strings.Replace(strings.TrimPrefix(signature.Desc, "("), ")", defaultMaskParameter+defaultHandlerParameter+")", 1)
		matches = func(candidate m.MethodSignature) bool {
			return candidate.Name == searchedName && strings.HasSuffix(candidate.Desc, searchedDesc)
		}
	}

	var found m.Function

	for _, local := range fn.Func().LocalFunctions {
		if !matches(local.Func().Signature) {
			continue
		}

		if found != nil {
			return nil, composeErrorf(AmbiguousDefaultValueWrapper, signature.String(),
				"both %s and %s match", found.Func().Signature, local.Func().Signature)
		}

		found = local
	}

	return found, nil
}

// ToInterfaceForwarderSignature rewrites an interface method signature into the
// signature of its DefaultImpls forwarder, which takes the interface as first parameter.
func ToInterfaceForwarderSignature(signature m.MethodSignature, owner m.QualifiedName) m.MethodSignature {
	return m.MethodSignature{
		Name: signature.Name,
		Desc: strings.Replace(signature.Desc, "(", "("+m.Reference(owner.InternalName()), 1),
	}
}

// ResolveEnclosingFunction picks the function a local function was declared in:
// a single candidate wins; otherwise candidates ending before the local function
// are dropped, a candidate that also starts at or before it wins, and failing
// that the candidate starting first. Nil means nothing survived.
func ResolveEnclosingFunction(candidates []m.Function, lines m.Lines) m.Function {
	if len(candidates) == 1 {
		return candidates[0]
	}

	if lines.Empty() {
		return nil
	}

	filtered := make([]m.Function, 0, len(candidates))

	for _, candidate := range candidates {
		candidateLines := candidate.Func().Lines
		if !candidateLines.Empty() && candidateLines.Last() >= lines.Last() {
			filtered = append(filtered, candidate)
		}
	}

	for _, candidate := range filtered {
		if candidate.Func().Lines.First() <= lines.First() {
			return candidate
		}
	}

	var earliest m.Function

	for _, candidate := range filtered {
		if earliest == nil || candidate.Func().Lines.First() < earliest.Func().Lines.First() {
			earliest = candidate
		}
	}

	return earliest
}

// functionPool indexes the functions of one class by the name their local
// functions are prefixed with. It lives for one class composition only.
type functionPool struct {
	byName map[string][]m.Function
}

func newFunctionPool() *functionPool {
	return &functionPool{byName: make(map[string][]m.Function)}
}

func (p *functionPool) add(name string, fn m.Function) {
	p.byName[name] = append(p.byName[name], fn)
}

// candidates returns the functions that may enclose local and the pool key they were found under.
func (p *functionPool) candidates(local m.AnonymousFunctionInitial) ([]m.Function, string) {
	if local.OuterMethod != nil {
		if fn, key := p.bySignature(*local.OuterMethod); fn != nil {
			return []m.Function{fn}, key
		}
	}

	name := local.Signature.Name

	switch {
	case name == m.ConstructorName:
		// a local <init> is a constructor's default-values wrapper
		if found := p.byName[m.ConstructorNameInLocalFn]; len(found) > 0 {
			return found, m.ConstructorNameInLocalFn
		}
	case IsNamedLikeLambda(name):
		base := name[:strings.LastIndexByte(name, '$')]
		base = base[:strings.LastIndexByte(base, '$')]

		if found := p.byName[base]; len(found) > 0 {
			return found, base
		}
	}

	for _, key := range p.keysByLength() {
		if key != name && strings.HasPrefix(name, key+"$") {
			return p.byName[key], key
		}
	}

	return nil, ""
}

func (p *functionPool) bySignature(signature m.MethodSignature) (m.Function, string) {
	keys := p.keysByLength()
	for _, key := range keys {
		for _, fn := range p.byName[key] {
			if fn.Func().Signature == signature {
				return fn, key
			}
		}
	}

	return nil, ""
}

// keysByLength orders keys longest first, ties alphabetically.
func (p *functionPool) keysByLength() []string {
	keys := make([]string, 0, len(p.byName))
	for key := range p.byName {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
